package languages

import "goloc/internal/syntax"

var (
	cStyle      = syntax.LineAndBlockOf([]string{"//"}, []syntax.Pair{{Start: "/*", End: "*/"}})
	htmlStyle   = syntax.Block(syntax.Pair{Start: "<!--", End: "-->"})
	mlStyle     = syntax.Block(syntax.Pair{Start: "(*", End: "*)"})
	prologStyle = syntax.LineAndBlockOf([]string{"%"}, []syntax.Pair{{Start: "/*", End: "*/"}})
	shStyle     = syntax.Line("#")
	haskell     = syntax.LineAndBlockOf([]string{"--"}, []syntax.Pair{{Start: "{-", End: "-}"}})
	noComments  = syntax.NoComments()
)

func lineAndBlock(marker string, start string, end string) syntax.Descriptor {
	return syntax.LineAndBlockOf([]string{marker}, []syntax.Pair{{Start: start, End: end}})
}

// builtinLanguages 是内置语言表：文件名/后缀到语言，以及语言到注释规则。
// 大多数语言只有一遍规则；Ruby 与 Perl 的两套注释约定拆成两遍，由分类器合并。
func builtinLanguages() []Language {
	return []Language{
		{Name: "ActionScript", Extensions: []string{".as"}, Passes: single(cStyle)},
		{Name: "Ada", Extensions: []string{".ada", ".adb", ".ads", ".pad"}, Passes: single(syntax.Line("--"))},
		{Name: "Agda", Extensions: []string{".agda"}, Passes: single(haskell)},
		{Name: "AmbientTalk", Extensions: []string{".at"}, Passes: single(cStyle)},
		{Name: "ASP", Extensions: []string{".asa", ".asp"}, Passes: single(syntax.Line("'", "REM"))},
		{
			Name:       "ASP.NET",
			Extensions: []string{".asax", ".ascx", ".asmx", ".aspx", ".master", ".sitemap", ".webinfo"},
			Passes: single(syntax.Block(
				syntax.Pair{Start: "<!--", End: "-->"},
				syntax.Pair{Start: "<%--", End: "-->"},
			)),
		},
		{Name: "Assembly", Extensions: []string{".s", ".asm"}, Passes: single(lineAndBlock("#", "/*", "*/"))},
		{Name: "Autoconf", Extensions: []string{".in"}, Passes: single(syntax.Line("#", "dnl"))},
		{Name: "Awk", Extensions: []string{".awk"}, Passes: single(shStyle)},
		{Name: "Batch", Extensions: []string{".bat", ".btm", ".cmd"}, Passes: single(syntax.Line("REM"))},
		{Name: "Bourne Shell", Extensions: []string{".sh"}, Passes: single(shStyle)},
		{Name: "C", Extensions: []string{".c", ".ec", ".pgc"}, Passes: single(cStyle)},
		{Name: "C/C++ Header", Extensions: []string{".h", ".hh", ".hpp", ".hxx"}, Passes: single(cStyle)},
		{Name: "CMake", Extensions: []string{".cmake"}, Filenames: []string{"cmakelists.txt"}, Passes: single(lineAndBlock("#", "#[[", "]]"))},
		{Name: "C#", Extensions: []string{".cs"}, Passes: single(cStyle)},
		{Name: "C Shell", Extensions: []string{".csh"}, Passes: single(shStyle)},
		{Name: "Clojure", Extensions: []string{".clj", ".cljs", ".cljc"}, Passes: single(syntax.Line(";", "#"))},
		{Name: "CoffeeScript", Extensions: []string{".coffee"}, Passes: single(lineAndBlock("#", "###", "###"))},
		{Name: "ColdFusion", Extensions: []string{".cfm"}, Passes: single(syntax.Block(syntax.Pair{Start: "<!---", End: "--->"}))},
		{Name: "ColdFusionScript", Extensions: []string{".cfc"}, Passes: single(cStyle)},
		{Name: "Coq", Extensions: []string{".v"}, Passes: single(mlStyle)},
		{Name: "C++", Extensions: []string{".cc", ".cpp", ".cxx", ".c++", ".pcc"}, Passes: single(cStyle)},
		{Name: "CSS", Extensions: []string{".css", ".pcss", ".sss", ".postcss"}, Passes: single(cStyle)},
		{Name: "CUDA", Extensions: []string{".cu"}, Passes: single(cStyle)},
		{Name: "CUDA Header", Extensions: []string{".cuh"}, Passes: single(cStyle)},
		{Name: "D", Extensions: []string{".d"}, Passes: single(cStyle)},
		{Name: "Dart", Extensions: []string{".dart"}, Passes: single(cStyle)},
		{Name: "DeviceTree", Extensions: []string{".dts", ".dtsi"}, Passes: single(cStyle)},
		{Name: "Docker", Extensions: []string{".docker"}, Filenames: []string{"dockerfile"}, Passes: single(shStyle)},
		{Name: "Elixir", Extensions: []string{".ex", ".exs"}, Passes: single(shStyle)},
		{Name: "Elm", Extensions: []string{".elm"}, Passes: single(haskell)},
		{Name: "Erlang", Extensions: []string{".erl", ".hrl"}, Passes: single(syntax.Line("%"))},
		{
			Name:       "Forth",
			Extensions: []string{".4th", ".forth", ".fr", ".frt", ".fth", ".f83", ".fb", ".fpm", ".e4", ".rx", ".ft"},
			Passes:     single(lineAndBlock("\\", "(", ")")),
		},
		{Name: "FORTRAN Legacy", Extensions: []string{".f", ".for", ".ftn", ".f77", ".pfo"}, Passes: single(syntax.Line("c", "C", "!", "*"))},
		{Name: "FORTRAN Modern", Extensions: []string{".f03", ".f08", ".f90", ".f95"}, Passes: single(syntax.Line("!"))},
		{Name: "F#", Extensions: []string{".fs", ".fsx"}, Passes: single(lineAndBlock("//", "(*", "*)"))},
		{Name: "Gherkin", Extensions: []string{".feature"}, Passes: single(shStyle)},
		{Name: "GLSL", Extensions: []string{".vert", ".tesc", ".tese", ".geom", ".frag", ".comp"}, Passes: single(cStyle)},
		{Name: "Go", Extensions: []string{".go"}, Passes: single(cStyle)},
		{Name: "Groovy", Extensions: []string{".groovy"}, Passes: single(cStyle)},
		{
			Name:       "Handlebars",
			Extensions: []string{".hbs", ".handlebars"},
			Passes: single(syntax.Block(
				syntax.Pair{Start: "<!--", End: "-->"},
				syntax.Pair{Start: "{{!", End: "}}"},
			)),
		},
		{Name: "Haskell", Extensions: []string{".hs"}, Passes: single(haskell)},
		{Name: "Haxe", Extensions: []string{".hx"}, Passes: single(cStyle)},
		{Name: "Hex", Extensions: []string{".hex"}, Passes: single(noComments)},
		{Name: "HTML", Extensions: []string{".html", ".htm"}, Passes: single(htmlStyle)},
		{Name: "Idris", Extensions: []string{".idr", ".lidr"}, Passes: single(haskell)},
		{Name: "INI", Extensions: []string{".ini"}, Passes: single(syntax.Line(";"))},
		{Name: "Intel Hex", Extensions: []string{".ihex"}, Passes: single(noComments)},
		{
			Name:       "Isabelle",
			Extensions: []string{".thy"},
			Passes: single(syntax.LineAndBlockOf([]string{"--"}, []syntax.Pair{
				{Start: "{*", End: "*}"},
				{Start: "(*", End: "*)"},
				{Start: "‹", End: "›"},
				{Start: "\\<open>", End: "\\<close>"},
			})),
		},
		{Name: "Jai", Extensions: []string{".jai"}, Passes: single(cStyle)},
		{Name: "Java", Extensions: []string{".java"}, Passes: single(cStyle)},
		{Name: "JavaScript", Extensions: []string{".js", ".mjs", ".cjs"}, Passes: single(cStyle)},
		{Name: "JSON", Extensions: []string{".json"}, Passes: single(noComments)},
		{Name: "Jsx", Extensions: []string{".jsx"}, Passes: single(cStyle)},
		{Name: "Julia", Extensions: []string{".jl"}, Passes: single(lineAndBlock("#", "#=", "=#"))},
		{Name: "Kotlin", Extensions: []string{".kt", ".kts"}, Passes: single(cStyle)},
		{Name: "Lean", Extensions: []string{".lean", ".hlean"}, Passes: single(lineAndBlock("--", "/-", "-/"))},
		{Name: "Less", Extensions: []string{".less"}, Passes: single(cStyle)},
		{Name: "LinkerScript", Extensions: []string{".lds"}, Passes: single(cStyle)},
		{Name: "Lisp", Extensions: []string{".el", ".lisp", ".lsp", ".scm", ".ss", ".rkt"}, Passes: single(lineAndBlock(";", "#|", "|#"))},
		{Name: "Lua", Extensions: []string{".lua"}, Passes: single(lineAndBlock("--", "--[[", "]]"))},
		{Name: "Makefile", Extensions: []string{".mk", ".makefile"}, Passes: single(shStyle)},
		{Name: "Markdown", Extensions: []string{".md", ".markdown"}, Passes: single(noComments)},
		{Name: "Mustache", Extensions: []string{".mustache"}, Passes: single(syntax.Block(syntax.Pair{Start: "{{!", End: "}}"}))},
		{Name: "Nim", Extensions: []string{".nim"}, Passes: single(shStyle)},
		{Name: "Nix", Extensions: []string{".nix"}, Passes: single(lineAndBlock("#", "/*", "*/"))},
		{Name: "Objective-C", Extensions: []string{".m"}, Passes: single(cStyle)},
		{Name: "Objective-C++", Extensions: []string{".mm"}, Passes: single(cStyle)},
		{Name: "OCaml", Extensions: []string{".ml", ".mli"}, Passes: single(mlStyle)},
		{Name: "OpenCL", Extensions: []string{".cl"}, Passes: single(cStyle)},
		{Name: "Oz", Extensions: []string{".oz"}, Passes: single(prologStyle)},
		{
			Name:       "Pascal",
			Extensions: []string{".pas"},
			Passes:     single(syntax.LineAndBlockOf([]string{"//", "(*"}, []syntax.Pair{{Start: "{", End: "}"}})),
		},
		{
			Name:       "Perl",
			Extensions: []string{".pl", ".pm"},
			Passes:     []syntax.Descriptor{syntax.Line("#"), syntax.Block(syntax.Pair{Start: "=pod", End: "=cut"})},
		},
		{Name: "PHP", Extensions: []string{".php"}, Passes: single(syntax.LineAndBlockOf([]string{"#", "//"}, []syntax.Pair{{Start: "/*", End: "*/"}}))},
		{Name: "Plain Text", Extensions: []string{".text", ".txt"}, Passes: single(noComments)},
		{Name: "Polly", Extensions: []string{".polly"}, Passes: single(htmlStyle)},
		{Name: "PowerShell", Extensions: []string{".ps1", ".psd1", ".psm1"}, Passes: single(lineAndBlock("#", "<#", "#>"))},
		{Name: "Prolog", Extensions: []string{".p", ".pro"}, Passes: single(prologStyle)},
		{Name: "Protobuf", Extensions: []string{".proto"}, Passes: single(syntax.Line("//"))},
		{Name: "Puppet", Extensions: []string{".pp"}, Passes: single(shStyle)},
		{Name: "PureScript", Extensions: []string{".purs"}, Passes: single(haskell)},
		{Name: "Pyret", Extensions: []string{".arr"}, Passes: single(lineAndBlock("#", "#|", "|#"))},
		{Name: "Python", Extensions: []string{".py"}, Passes: single(lineAndBlock("#", "'''", "'''"))},
		{Name: "Qcl", Extensions: []string{".qcl"}, Passes: single(cStyle)},
		{Name: "Qml", Extensions: []string{".qml"}, Passes: single(cStyle)},
		{Name: "R", Extensions: []string{".r"}, Passes: single(shStyle)},
		{
			Name:       "Razor",
			Extensions: []string{".cshtml"},
			Passes: single(syntax.Block(
				syntax.Pair{Start: "<!--", End: "-->"},
				syntax.Pair{Start: "@*", End: "*@"},
			)),
		},
		{Name: "Reason", Extensions: []string{".re", ".rei"}, Passes: single(cStyle)},
		{Name: "reStructuredText", Extensions: []string{".rst"}, Passes: single(noComments)},
		{
			Name:       "Ruby",
			Extensions: []string{".rb", ".rake"},
			Passes:     []syntax.Descriptor{syntax.Line("#"), syntax.Block(syntax.Pair{Start: "=begin", End: "=end"})},
		},
		{Name: "RubyHtml", Extensions: []string{".rhtml", ".erb"}, Passes: single(htmlStyle)},
		{Name: "Rust", Extensions: []string{".rs"}, Passes: single(cStyle)},
		{Name: "SaltStack", Extensions: []string{".sls"}, Passes: single(shStyle)},
		{Name: "Sass", Extensions: []string{".sass", ".scss"}, Passes: single(cStyle)},
		{Name: "Scala", Extensions: []string{".sc", ".scala"}, Passes: single(cStyle)},
		{Name: "SML", Extensions: []string{".sml"}, Passes: single(mlStyle)},
		{Name: "SQL", Extensions: []string{".sql"}, Passes: single(lineAndBlock("--", "/*", "*/"))},
		{Name: "Stylus", Extensions: []string{".styl"}, Passes: single(cStyle)},
		{Name: "Swift", Extensions: []string{".swift"}, Passes: single(cStyle)},
		{Name: "Tcl", Extensions: []string{".tcl"}, Passes: single(shStyle)},
		{Name: "Terraform", Extensions: []string{".tf"}, Passes: single(lineAndBlock("#", "/*", "*/"))},
		{Name: "TeX", Extensions: []string{".tex", ".sty"}, Passes: single(syntax.Line("%"))},
		{Name: "Toml", Extensions: []string{".toml"}, Passes: single(shStyle)},
		{Name: "TypeScript", Extensions: []string{".ts", ".mts", ".cts"}, Passes: single(cStyle)},
		{Name: "Typescript JSX", Extensions: []string{".tsx"}, Passes: single(cStyle)},
		{Name: "UnrealScript", Extensions: []string{".uc", ".uci", ".upkg"}, Passes: single(cStyle)},
		{Name: "VimL", Extensions: []string{".vim"}, Passes: single(syntax.Line("\""))},
		{
			Name:       "Vue",
			Extensions: []string{".vue"},
			Passes: single(syntax.LineAndBlockOf([]string{"//"}, []syntax.Pair{
				{Start: "/*", End: "*/"},
				{Start: "<!--", End: "-->"},
			})),
		},
		{Name: "Wolfram", Extensions: []string{".nb", ".wl"}, Passes: single(mlStyle)},
		{Name: "XML", Extensions: []string{".xml"}, Passes: single(htmlStyle)},
		{Name: "Yacc", Extensions: []string{".y"}, Passes: single(cStyle)},
		{Name: "YAML", Extensions: []string{".yaml", ".yml"}, Passes: single(shStyle)},
		{Name: "Zig", Extensions: []string{".zig"}, Passes: single(syntax.Line("//"))},
		{Name: "Z Shell", Extensions: []string{".zsh"}, Passes: single(shStyle)},
	}
}

func single(descriptor syntax.Descriptor) []syntax.Descriptor {
	return []syntax.Descriptor{descriptor}
}

// enryAliases 把 go-enry 的语言名映射到内置表中的名称。
// 名称本身一致的语言不需要出现在这里。
var enryAliases = map[string]string{
	"Shell":             "Bourne Shell",
	"Tcsh":              "C Shell",
	"Vim Script":        "VimL",
	"Dockerfile":        "Docker",
	"Emacs Lisp":        "Lisp",
	"Common Lisp":       "Lisp",
	"Scheme":            "Lisp",
	"Racket":            "Lisp",
	"TSX":               "Typescript JSX",
	"JSX":               "Jsx",
	"Fortran":           "FORTRAN Modern",
	"Fortran Free Form": "FORTRAN Modern",
	"HCL":               "Terraform",
	"TOML":              "Toml",
	"Text":              "Plain Text",
	"Standard ML":       "SML",
	"Mathematica":       "Wolfram",
	"HTML+ERB":          "RubyHtml",
	"Protocol Buffer":   "Protobuf",
	"Cuda":              "CUDA",
	"Batchfile":         "Batch",
	"Linker Script":     "LinkerScript",
}
