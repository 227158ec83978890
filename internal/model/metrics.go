// Package model 定义 goloc 的核心数据模型。
// 这些结构会被分类器、聚合器、扫描器和输出层共同使用。
package model

// Count 表示单个文件（或一组文件）的行分类统计。
//
// 约束：
// - 每一行只会落入 code/comment/blank 中的一类
// - Lines 恒等于 Code + Comment + Blank
// - 零值同时表示“空文件”和“无法分类”，调用方无法区分两者
type Count struct {
	Code    uint64 `json:"code"`
	Comment uint64 `json:"comment"`
	Blank   uint64 `json:"blank"`
	Lines   uint64 `json:"lines"`
}

// Add 将另一个统计结果逐字段叠加到当前对象。
func (c *Count) Add(other Count) {
	c.Code += other.Code
	c.Comment += other.Comment
	c.Blank += other.Blank
	c.Lines += other.Lines
}

// IsZero 判断是否为零值统计。
func (c Count) IsZero() bool {
	return c == Count{}
}

// Consistent 校验 Lines 与三类计数之和是否一致。
func (c Count) Consistent() bool {
	return c.Lines == c.Code+c.Comment+c.Blank
}

// LangTotal 表示某个语言在一次扫描中的聚合结果。
type LangTotal struct {
	Language   string   `json:"language"`
	Extensions []string `json:"extensions,omitempty"`
	Files      uint64   `json:"files"`
	Count      Count    `json:"count"`
}

// FileMetrics 表示单文件扫描结果。
type FileMetrics struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Count    Count  `json:"count"`
}

// ScanError 记录单文件扫描失败信息。
// 单个文件失败只贡献零值统计，不会阻断整次扫描。
type ScanError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// GrandTotal 表示项目级总计信息。
type GrandTotal struct {
	Files uint64 `json:"files"`
	Count
}

// ScanResult 是 scan 命令的完整输出模型。
// 包含文件级明细、语言级汇总、全局总计和错误列表。
type ScanResult struct {
	ScannedPaths []string      `json:"scanned_paths"`
	Files        []FileMetrics `json:"files,omitempty"`
	Languages    []LangTotal   `json:"languages"`
	Total        GrandTotal    `json:"total"`
	Errors       []ScanError   `json:"errors"`
}
