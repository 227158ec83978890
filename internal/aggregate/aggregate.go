// Package aggregate 把单文件统计合并为语言级与项目级总计。
// 合并满足交换律与结合律，结果与文件完成顺序无关。
package aggregate

import (
	"sort"

	"goloc/internal/model"
)

// Aggregator 维护 语言 -> LangTotal 的映射。
// 非并发安全，由扫描器的唯一收集协程独占使用。
type Aggregator struct {
	byLanguage map[string]*model.LangTotal
}

// New 创建空的聚合器。
func New() *Aggregator {
	return &Aggregator{byLanguage: make(map[string]*model.LangTotal)}
}

// Merge 将一个文件的统计合并到所属语言，文件数 +1。
func (a *Aggregator) Merge(language string, count model.Count) {
	total, ok := a.byLanguage[language]
	if !ok {
		total = &model.LangTotal{Language: language}
		a.byLanguage[language] = total
	}
	total.Files++
	total.Count.Add(count)
}

// MergeAll 合并另一个聚合器的全部结果。
func (a *Aggregator) MergeAll(other *Aggregator) {
	for language, item := range other.byLanguage {
		total, ok := a.byLanguage[language]
		if !ok {
			total = &model.LangTotal{Language: language}
			a.byLanguage[language] = total
		}
		total.Files += item.Files
		total.Count.Add(item.Count)
	}
}

// Lookup 返回某个语言的当前合计。
func (a *Aggregator) Lookup(language string) (model.LangTotal, bool) {
	total, ok := a.byLanguage[language]
	if !ok {
		return model.LangTotal{}, false
	}
	return *total, true
}

// Totals 返回按语言名排序的合计快照。
func (a *Aggregator) Totals() []model.LangTotal {
	result := make([]model.LangTotal, 0, len(a.byLanguage))
	for _, item := range a.byLanguage {
		result = append(result, *item)
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Language < result[j].Language
	})
	return result
}

// GrandTotal 汇总全部语言的文件数与行数。
func (a *Aggregator) GrandTotal() model.GrandTotal {
	var total model.GrandTotal
	for _, item := range a.byLanguage {
		total.Files += item.Files
		total.Count.Add(item.Count)
	}
	return total
}
