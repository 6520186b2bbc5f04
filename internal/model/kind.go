package model

// ReportKind 报表类型
type ReportKind string

const (
	ReportDocs      ReportKind = "docs"      // 报表1：文档总表（必需）
	ReportFlujo     ReportKind = "flujo"     // 报表2：待办流程
	ReportHistorial ReportKind = "historial" // 报表3：历史分析
)

// ReportKinds 固定的展示顺序
var ReportKinds = []ReportKind{ReportDocs, ReportFlujo, ReportHistorial}

// Valid 是否为已知报表类型
func (k ReportKind) Valid() bool {
	switch k {
	case ReportDocs, ReportFlujo, ReportHistorial:
		return true
	}
	return false
}

// Required 缺失时是否阻断整个看板
func (k ReportKind) Required() bool {
	return k == ReportDocs
}
