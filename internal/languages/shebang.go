package languages

import (
	"bytes"
	"path"
	"strings"
)

// interpreterExt 把解释器名映射到内置表中的后缀。
var interpreterExt = map[string]string{
	"python":     ".py",
	"python2":    ".py",
	"python3":    ".py",
	"bash":       ".sh",
	"sh":         ".sh",
	"zsh":        ".zsh",
	"csh":        ".csh",
	"perl":       ".pl",
	"perl6":      ".pl",
	"stack":      ".hs",
	"runhaskell": ".hs",
	"node":       ".js",
	"ruby":       ".rb",
}

// extFromShebang 解析首行 #! 指令并返回对应后缀。
// 支持 #!/bin/python3 与 #!/usr/bin/env python3 两种写法。
func extFromShebang(head []byte) (string, bool) {
	if !bytes.HasPrefix(head, []byte("#!")) {
		return "", false
	}

	firstLine := head[2:]
	if idx := bytes.IndexByte(firstLine, '\n'); idx >= 0 {
		firstLine = firstLine[:idx]
	}

	fields := strings.Fields(string(firstLine))
	if len(fields) == 0 {
		return "", false
	}

	interpreter := path.Base(fields[0])
	if interpreter == "env" {
		if len(fields) < 2 {
			return "", false
		}
		interpreter = path.Base(fields[1])
	}

	ext, ok := interpreterExt[interpreter]
	return ext, ok
}
