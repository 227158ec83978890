// Package classifier 实现逐行分类状态机。
//
// 输入是单个文件的原始字节与该语言的注释描述符，输出是 code/comment/blank 统计。
// 分类器完全由描述符驱动，不感知具体语言。
//
// 状态机只有两个持久状态：OutsideComment 与 InsideBlockComment，跨行携带。
// 不维护嵌套栈：处于块注释内时不会再识别起始定界符。
package classifier

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"goloc/internal/lines"
	"goloc/internal/model"
	"goloc/internal/syntax"
)

// ErrInvalidUTF8 表示某一行不是合法 UTF-8，整个文件放弃分类。
var ErrInvalidUTF8 = errors.New("invalid utf-8 content")

// LineKind 是单行的分类结果。
type LineKind uint8

const (
	Blank LineKind = iota
	Code
	Comment
)

// String 返回分类名称。
func (k LineKind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Code:
		return "code"
	case Comment:
		return "comment"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

const notInBlock = -1

// machine 保存单个文件扫描期间的状态，扫描结束即丢弃。
type machine struct {
	markers []string
	pairs   []syntax.Pair

	// open 是当前所在块注释对应的 pair 下标，notInBlock 表示在注释外。
	open int
}

func newMachine(descriptor syntax.Descriptor) *machine {
	return &machine{
		markers: descriptor.Markers(),
		pairs:   descriptor.Pairs(),
		open:    notInBlock,
	}
}

func (m *machine) inBlock() bool {
	return m.open != notInBlock
}

// classify 处理一行（已确认是合法 UTF-8）。
func (m *machine) classify(raw string) LineKind {
	line := strings.TrimLeftFunc(raw, unicode.IsSpace)
	// 块注释内部的空行仍然计为 blank。
	if line == "" {
		return Blank
	}

	if !m.inBlock() {
		if m.startsWithLineMarker(line) {
			return Comment
		}
		if len(m.pairs) == 0 {
			return Code
		}
		if !m.containsDelimiter(line) {
			return Code
		}
	} else if !strings.Contains(line, m.pairs[m.open].End) {
		return Comment
	}

	if m.scan(line) {
		return Code
	}
	return Comment
}

// startsWithLineMarker 判断整行是否是行注释。
// 行首同时匹配块注释起始符时块注释优先，例如 Lua 的 -- 与 --[[。
func (m *machine) startsWithLineMarker(line string) bool {
	for _, marker := range m.markers {
		if !strings.HasPrefix(line, marker) {
			continue
		}
		for _, pair := range m.pairs {
			if strings.HasPrefix(line, pair.Start) {
				return false
			}
		}
		return true
	}
	return false
}

func (m *machine) containsDelimiter(line string) bool {
	for _, pair := range m.pairs {
		if strings.Contains(line, pair.Start) || strings.Contains(line, pair.End) {
			return true
		}
	}
	return false
}

// scan 逐字节推进游标，在定界符处切换状态。
// 返回该行在注释外是否出现过非空白字符。
func (m *machine) scan(line string) bool {
	foundCode := false

	for pos := 0; pos < len(line); {
		// 游标落在多字节字符中间时不做任何匹配，避免把字符拆开。
		// 只检查游标处是否为字符起点，不要求其后 max(len) 字节窗口也落在字符边界上，
		// 因此 "/* c */ 变量" 中的 变量 仍计为代码。
		if !utf8.RuneStart(line[pos]) {
			pos++
			continue
		}

		rest := line[pos:]
		if !m.inBlock() {
			if idx, ok := m.matchStart(rest); ok {
				m.open = idx
				pos += len(m.pairs[idx].Start)
				continue
			}
		} else if end := m.pairs[m.open].End; strings.HasPrefix(rest, end) {
			m.open = notInBlock
			pos += len(end)
			continue
		}

		r, size := utf8.DecodeRuneInString(rest)
		if !m.inBlock() && !unicode.IsSpace(r) {
			foundCode = true
		}
		pos += size
	}

	return foundCode
}

// matchStart 按声明顺序测试全部起始定界符，先匹配者胜出。
func (m *machine) matchStart(rest string) (int, bool) {
	for idx, pair := range m.pairs {
		if strings.HasPrefix(rest, pair.Start) {
			return idx, true
		}
	}
	return notInBlock, false
}

// ClassifyLines 返回每一行的分类结果。
// 任意一行不是合法 UTF-8 时返回 ErrInvalidUTF8，并丢弃全部结果。
func ClassifyLines(data []byte, descriptor syntax.Descriptor) ([]LineKind, error) {
	engine := newMachine(descriptor)
	kinds := make([]LineKind, 0, lines.Count(data))

	for line := range lines.All(data) {
		if !utf8.Valid(line) {
			return nil, fmt.Errorf("line %d: %w", len(kinds)+1, ErrInvalidUTF8)
		}
		kinds = append(kinds, engine.classify(string(line)))
	}
	return kinds, nil
}

// Classify 对一个文件的内容做单遍分类。
// 内容含非法 UTF-8 时返回零值 Count。
func Classify(data []byte, descriptor syntax.Descriptor) model.Count {
	var count model.Count
	engine := newMachine(descriptor)

	it := lines.New(data)
	for {
		line, ok := it.Next()
		if !ok {
			break
		}
		if !utf8.Valid(line) {
			return model.Count{}
		}

		count.Lines++
		switch engine.classify(string(line)) {
		case Blank:
			count.Blank++
		case Code:
			count.Code++
		case Comment:
			count.Comment++
		}
	}

	return count
}

// ClassifyPasses 用多个描述符依次完整扫描同一文件，并合并结果。
//
// 合并规则：任意一遍判为 comment 的行即为 comment。
// 前面各遍计为 code、后续某遍改判为 comment 的行，会从 Code 中扣除相同数量并加到 Comment，
// 保证 Lines == Code + Comment + Blank。
func ClassifyPasses(data []byte, passes ...syntax.Descriptor) model.Count {
	switch len(passes) {
	case 0:
		return Classify(data, syntax.NoComments())
	case 1:
		return Classify(data, passes[0])
	}

	combined, err := ClassifyLines(data, passes[0])
	if err != nil {
		return model.Count{}
	}
	count := tally(combined)

	for _, pass := range passes[1:] {
		kinds, passErr := ClassifyLines(data, pass)
		if passErr != nil {
			return model.Count{}
		}

		var reclassified uint64
		for idx, kind := range kinds {
			if kind == Comment && combined[idx] == Code {
				combined[idx] = Comment
				reclassified++
			}
		}
		count.Code -= reclassified
		count.Comment += reclassified
	}

	return count
}

// ClassifyFile 读取整个文件后分类。
// 文件无法读取时返回零值 Count 与错误，调用方可以只记录错误并继续。
func ClassifyFile(path string, passes ...syntax.Descriptor) (model.Count, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Count{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ClassifyPasses(data, passes...), nil
}

func tally(kinds []LineKind) model.Count {
	var count model.Count
	for _, kind := range kinds {
		count.Lines++
		switch kind {
		case Blank:
			count.Blank++
		case Code:
			count.Code++
		case Comment:
			count.Comment++
		}
	}
	return count
}
