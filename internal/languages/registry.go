// Package languages 提供数据驱动的语言表：文件 -> 语言 -> 注释规则。
// 分类器从不依据语言名分支，所有差异都体现在这里的描述符中。
package languages

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"goloc/internal/syntax"
)

// ErrUnsupported 表示无法为文件确定语言。
var ErrUnsupported = errors.New("unsupported file")

// shebangProbeSize 是识别 shebang 时读取的文件头长度。
const shebangProbeSize = 256

// Language 描述一个语言的识别规则与注释规则。
type Language struct {
	// Name 是语言展示名，同时作为聚合键。
	Name string
	// Extensions 是小写且带点号的后缀，如 .go。
	Extensions []string
	// Filenames 是需要整名匹配的小写文件名，如 dockerfile。
	Filenames []string
	// Passes 是一遍或多遍注释规则，多遍时由分类器合并。
	Passes []syntax.Descriptor
}

// LanguageDescriptor 用于对外展示语言、后缀与注释语法。
type LanguageDescriptor struct {
	Name       string
	Extensions []string
	Syntax     string
}

// Registry 管理语言表与各种查找索引。
type Registry struct {
	languages []Language
	byExt     map[string]int
	byFile    map[string]int
	byName    map[string]int
}

// NewRegistry 创建包含全部内置语言的注册中心。
// 内置表不合法属于编程错误，直接 panic。
func NewRegistry() *Registry {
	registry, err := newRegistry(builtinLanguages())
	if err != nil {
		panic(err)
	}
	return registry
}

func newRegistry(languages []Language) (*Registry, error) {
	registry := &Registry{
		languages: languages,
		byExt:     make(map[string]int),
		byFile:    make(map[string]int),
		byName:    make(map[string]int),
	}

	for idx, language := range languages {
		if len(language.Passes) == 0 {
			return nil, fmt.Errorf("language %s: no comment rules", language.Name)
		}
		for _, pass := range language.Passes {
			if err := pass.Validate(); err != nil {
				return nil, fmt.Errorf("language %s: %w", language.Name, err)
			}
		}
		if _, dup := registry.byName[language.Name]; dup {
			return nil, fmt.Errorf("language %s registered twice", language.Name)
		}
		registry.byName[language.Name] = idx

		for _, ext := range language.Extensions {
			ext = strings.ToLower(ext)
			if other, dup := registry.byExt[ext]; dup {
				return nil, fmt.Errorf("extension %s claimed by %s and %s", ext, languages[other].Name, language.Name)
			}
			registry.byExt[ext] = idx
		}
		for _, name := range language.Filenames {
			registry.byFile[strings.ToLower(name)] = idx
		}
	}

	return registry, nil
}

// Lookup 按语言名返回语言。
func (r *Registry) Lookup(name string) (Language, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return Language{}, false
	}
	return r.languages[idx], true
}

// DescriptorFor 返回语言的注释规则。
func (r *Registry) DescriptorFor(name string) ([]syntax.Descriptor, bool) {
	language, ok := r.Lookup(name)
	if !ok {
		return nil, false
	}
	return language.Passes, true
}

// ForFile 根据路径识别语言。
// 顺序：特殊文件名 -> 后缀 -> shebang -> go-enry 兜底。
// 只有前两步失败且文件没有后缀时才会读取文件头。
func (r *Registry) ForFile(path string) (Language, bool) {
	if language, ok := r.lookupName(r.matchName(path)); ok {
		return language, true
	}

	var head []byte
	if filepath.Ext(path) == "" {
		head = readHead(path)
	}
	return r.Detect(path, head)
}

// Detect 在已有文件头内容时识别语言，便于测试与复用已读取的数据。
func (r *Registry) Detect(path string, head []byte) (Language, bool) {
	if language, ok := r.lookupName(r.matchName(path)); ok {
		return language, true
	}

	if filepath.Ext(path) == "" {
		if ext, ok := extFromShebang(head); ok {
			if idx, found := r.byExt[ext]; found {
				return r.languages[idx], true
			}
		}
	}

	return r.detectWithEnry(path, head)
}

// matchName 依据文件名与后缀查找，返回语言名；找不到返回空串。
func (r *Registry) matchName(path string) string {
	base := strings.ToLower(filepath.Base(path))

	if strings.Contains(base, "makefile") {
		return "Makefile"
	}
	if idx, ok := r.byFile[base]; ok {
		return r.languages[idx].Name
	}
	if idx, ok := r.byExt[strings.ToLower(filepath.Ext(base))]; ok {
		return r.languages[idx].Name
	}
	return ""
}

func (r *Registry) lookupName(name string) (Language, bool) {
	if name == "" {
		return Language{}, false
	}
	return r.Lookup(name)
}

// detectWithEnry 用 go-enry 识别内置表未覆盖的后缀、文件名与 shebang。
func (r *Registry) detectWithEnry(path string, head []byte) (Language, bool) {
	base := filepath.Base(path)
	candidates := make([]string, 0, 3)

	if name, _ := enry.GetLanguageByFilename(base); name != "" {
		candidates = append(candidates, name)
	}
	if name, _ := enry.GetLanguageByExtension(base); name != "" {
		candidates = append(candidates, name)
	}
	if len(head) > 0 {
		if name, _ := enry.GetLanguageByShebang(head); name != "" {
			candidates = append(candidates, name)
		}
	}

	for _, name := range candidates {
		if alias, ok := enryAliases[name]; ok {
			name = alias
		}
		if language, ok := r.Lookup(name); ok {
			return language, true
		}
	}
	return Language{}, false
}

// Languages 返回已注册语言清单，按名称排序。
func (r *Registry) Languages() []LanguageDescriptor {
	result := make([]LanguageDescriptor, 0, len(r.languages))
	for _, language := range r.languages {
		extensions := append([]string(nil), language.Extensions...)
		sort.Strings(extensions)

		rules := make([]string, 0, len(language.Passes))
		for _, pass := range language.Passes {
			rules = append(rules, pass.String())
		}

		result = append(result, LanguageDescriptor{
			Name:       language.Name,
			Extensions: extensions,
			Syntax:     strings.Join(rules, " | "),
		})
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// ExtensionsForLanguage 返回指定语言对应的全部后缀。
func (r *Registry) ExtensionsForLanguage(name string) []string {
	language, ok := r.Lookup(name)
	if !ok {
		return nil
	}
	extensions := append([]string(nil), language.Extensions...)
	sort.Strings(extensions)
	return extensions
}

// readHead 读取文件开头用于 shebang 识别，失败时返回 nil。
func readHead(path string) []byte {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	buf := make([]byte, shebangProbeSize)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil
	}
	return buf[:n]
}
