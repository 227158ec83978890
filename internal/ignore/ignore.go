// Package ignore 实现 gitignore 风格的路径过滤。
// 用于 --exclude 参数与扫描根目录下的 .gitignore。
// 支持 ! 取反、末尾 / 限定目录、开头 / 锚定根目录，以及 ** 跨多级目录。
package ignore

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path"
	"strings"
)

type pattern struct {
	glob     string
	negated  bool
	dirOnly  bool
	anchored bool
}

// Matcher 按顺序评估一组模式，后出现的模式覆盖先出现的结果。
type Matcher struct {
	patterns []pattern
}

// Load 从文件读取模式；文件不存在时返回空 Matcher。
func Load(filePath string) (*Matcher, error) {
	file, err := os.Open(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return &Matcher{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return Parse(lines), nil
}

// Parse 从原始行构建 Matcher，忽略空行与 # 注释行。
func Parse(lines []string) *Matcher {
	matcher := &Matcher{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		p := pattern{}
		if strings.HasPrefix(line, "!") {
			p.negated = true
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			p.dirOnly = true
			line = strings.TrimSuffix(line, "/")
		}
		if strings.HasPrefix(line, "/") {
			p.anchored = true
			line = strings.TrimPrefix(line, "/")
		}
		if line == "" {
			continue
		}

		p.glob = line
		matcher.patterns = append(matcher.patterns, p)
	}
	return matcher
}

// Merge 返回包含两组模式的新 Matcher，other 的模式优先级更高。
func (m *Matcher) Merge(other *Matcher) *Matcher {
	merged := &Matcher{}
	if m != nil {
		merged.patterns = append(merged.patterns, m.patterns...)
	}
	if other != nil {
		merged.patterns = append(merged.patterns, other.patterns...)
	}
	return merged
}

// Empty 判断是否没有任何模式。
func (m *Matcher) Empty() bool {
	return m == nil || len(m.patterns) == 0
}

// Match 判断相对路径（斜杠分隔）是否应被忽略。
func (m *Matcher) Match(relPath string, isDir bool) bool {
	if m.Empty() {
		return false
	}

	relPath = strings.TrimPrefix(path.Clean(relPath), "./")
	ignored := false
	for _, p := range m.patterns {
		if p.dirOnly && !isDir {
			continue
		}
		if matchPattern(p, relPath) {
			ignored = !p.negated
		}
	}
	return ignored
}

// matchPattern 处理两类模式：
// 含斜杠或以 / 开头的模式匹配完整相对路径；其余模式匹配任意一级路径分量。
func matchPattern(p pattern, relPath string) bool {
	if p.anchored || strings.Contains(p.glob, "/") {
		return matchSegments(strings.Split(p.glob, "/"), strings.Split(relPath, "/"))
	}

	for _, part := range strings.Split(relPath, "/") {
		if matched, _ := path.Match(p.glob, part); matched {
			return true
		}
	}
	return false
}

// matchSegments 逐级匹配路径分量，** 匹配零个或多个分量。
func matchSegments(globs []string, parts []string) bool {
	for len(globs) > 0 {
		if globs[0] == "**" {
			rest := globs[1:]
			for skip := 0; skip <= len(parts); skip++ {
				if matchSegments(rest, parts[skip:]) {
					return true
				}
			}
			return false
		}
		if len(parts) == 0 {
			return false
		}
		if matched, _ := path.Match(globs[0], parts[0]); !matched {
			return false
		}
		globs, parts = globs[1:], parts[1:]
	}
	return len(parts) == 0
}
