// Package syntax 描述单个语言的注释语法。
//
// Descriptor 是一个带标签的联合体：None / LineOnly / BlockOnly / LineAndBlock。
// 没有注释语法的语言使用 None，而不是一个“永远匹配不到”的哨兵字符串。
package syntax

import (
	"errors"
	"fmt"
	"strings"
)

// Kind 标识 Descriptor 的变体。
type Kind uint8

const (
	// None 表示不存在任何注释语法，所有非空行都是代码。
	None Kind = iota
	// LineOnly 只有行注释前缀。
	LineOnly
	// BlockOnly 只有块注释定界符。
	BlockOnly
	// LineAndBlock 同时具备两者。
	LineAndBlock
)

// String 返回变体名称。
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case LineOnly:
		return "line"
	case BlockOnly:
		return "block"
	case LineAndBlock:
		return "line+block"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ErrEmptyRule 表示描述符中出现了空的前缀或定界符。
var ErrEmptyRule = errors.New("empty comment rule")

// Pair 是一对块注释定界符。
type Pair struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// MaxLen 返回起止定界符中较长者的字节长度。
func (p Pair) MaxLen() int {
	return max(len(p.Start), len(p.End))
}

// Descriptor 是单个语言的注释规则集合。
// 零值等价于 None()。
type Descriptor struct {
	kind    Kind
	markers []string
	pairs   []Pair
}

// NoComments 构造 None 变体。
func NoComments() Descriptor {
	return Descriptor{kind: None}
}

// Line 构造 LineOnly 变体。
func Line(markers ...string) Descriptor {
	return Descriptor{kind: LineOnly, markers: markers}
}

// Block 构造 BlockOnly 变体，pairs 的顺序即匹配优先级。
func Block(pairs ...Pair) Descriptor {
	return Descriptor{kind: BlockOnly, pairs: pairs}
}

// LineAndBlockOf 构造 LineAndBlock 变体。
func LineAndBlockOf(markers []string, pairs []Pair) Descriptor {
	return Descriptor{kind: LineAndBlock, markers: markers, pairs: pairs}
}

// Kind 返回变体。
func (d Descriptor) Kind() Kind {
	return d.kind
}

// Markers 返回行注释前缀；None 与 BlockOnly 返回 nil。
func (d Descriptor) Markers() []string {
	if d.kind == LineOnly || d.kind == LineAndBlock {
		return d.markers
	}
	return nil
}

// Pairs 返回块注释定界符；None 与 LineOnly 返回 nil。
func (d Descriptor) Pairs() []Pair {
	if d.kind == BlockOnly || d.kind == LineAndBlock {
		return d.pairs
	}
	return nil
}

// Validate 检查描述符是否满足“规则非空”的约定。
// 分类器本身不做这项检查，语言表在注册时调用。
func (d Descriptor) Validate() error {
	switch d.kind {
	case None:
		return nil
	case LineOnly:
		if len(d.markers) == 0 {
			return fmt.Errorf("%s descriptor without markers: %w", d.kind, ErrEmptyRule)
		}
	case BlockOnly:
		if len(d.pairs) == 0 {
			return fmt.Errorf("%s descriptor without pairs: %w", d.kind, ErrEmptyRule)
		}
	case LineAndBlock:
		if len(d.markers) == 0 || len(d.pairs) == 0 {
			return fmt.Errorf("%s descriptor needs markers and pairs: %w", d.kind, ErrEmptyRule)
		}
	default:
		return fmt.Errorf("unknown descriptor kind %d", d.kind)
	}

	for _, marker := range d.markers {
		if marker == "" {
			return fmt.Errorf("line marker: %w", ErrEmptyRule)
		}
	}
	for _, pair := range d.pairs {
		if pair.Start == "" || pair.End == "" {
			return fmt.Errorf("block pair %q/%q: %w", pair.Start, pair.End, ErrEmptyRule)
		}
	}
	return nil
}

// String 返回便于展示的规则描述，例如 `// /* */`。
func (d Descriptor) String() string {
	if d.kind == None {
		return "-"
	}

	parts := make([]string, 0, len(d.markers)+len(d.pairs))
	parts = append(parts, d.Markers()...)
	for _, pair := range d.Pairs() {
		parts = append(parts, pair.Start+" "+pair.End)
	}
	return strings.Join(parts, "  ")
}
