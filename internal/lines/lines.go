// Package lines 把字节缓冲区按 '\n' 切分为行。
// 切分只识别 0x0A 字节，不要求整个缓冲区是合法 UTF-8。
package lines

import (
	"bytes"
	"iter"
)

// Iterator 是惰性的行迭代器。
// 返回的切片与原缓冲区共享底层内存，调用方不应修改。
type Iterator struct {
	buf []byte
	pos int
}

// New 创建一个从缓冲区起始位置开始的迭代器。
func New(buf []byte) *Iterator {
	return &Iterator{buf: buf}
}

// Next 返回下一行（已去掉结尾的 '\n'）。
// 没有换行符结尾的最后一行只要非空仍会返回；空缓冲区不产生任何行。
func (it *Iterator) Next() ([]byte, bool) {
	if it.pos >= len(it.buf) {
		return nil, false
	}

	rest := it.buf[it.pos:]
	if idx := bytes.IndexByte(rest, '\n'); idx >= 0 {
		it.pos += idx + 1
		return rest[:idx], true
	}

	it.pos = len(it.buf)
	return rest, true
}

// Reset 让迭代器从头开始，便于对同一文件做多遍扫描。
func (it *Iterator) Reset() {
	it.pos = 0
}

// All 以 iter.Seq 形式遍历全部行。
func All(buf []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		it := New(buf)
		for {
			line, ok := it.Next()
			if !ok || !yield(line) {
				return
			}
		}
	}
}

// Split 一次性返回全部行。
func Split(buf []byte) [][]byte {
	result := make([][]byte, 0, Count(buf))
	for line := range All(buf) {
		result = append(result, line)
	}
	return result
}

// Count 返回 Split 会产生的行数，不分配内存。
func Count(buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	n := bytes.Count(buf, []byte{'\n'})
	if buf[len(buf)-1] != '\n' {
		n++
	}
	return n
}
