package dashboard

import "github.com/Dvmian56/dashboard-control-anglo/internal/status"

// View 看板渲染模型
type View struct {
	Ready     bool     `json:"ready"`
	Message   string   `json:"message,omitempty"`
	Selected  string   `json:"selected"`
	Contracts []string `json:"contracts"`
	Tabs      []Tab    `json:"tabs"`
	General   *General `json:"general,omitempty"`
	Flujo     Panel    `json:"flujo"`
	Historial Panel    `json:"historial"`
}

// Tab 标签页
type Tab struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// Metric 指标卡
type Metric struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Slice 图表中的一个分组（饼图扇区 / 柱状图柱）
type Slice struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Table 表格
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// General 标签页 1：文档总览
type General struct {
	Metrics       []Metric      `json:"metrics"`
	Counts        status.Counts `json:"counts"`
	StatusChart   []Slice       `json:"statusChart"`   // 按原始 Estatus 的饼图
	CategoryChart []Slice       `json:"categoryChart"` // 按简化状态的柱状图
	Detail        Table         `json:"detail"`
}

// Panel 标签页 2 / 3：可选报表
type Panel struct {
	Available bool   `json:"available"`
	Title     string `json:"title,omitempty"`
	Message   string `json:"message,omitempty"`
	Table     *Table `json:"table,omitempty"`
}
