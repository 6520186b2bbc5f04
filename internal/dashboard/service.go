package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Dvmian56/dashboard-control-anglo/internal/logger"
	"github.com/Dvmian56/dashboard-control-anglo/internal/model"
	"github.com/Dvmian56/dashboard-control-anglo/internal/report"
)

// Source 报表来源
type Source interface {
	Inspect(keyword string) report.Result
}

// Recorder 加载历史记录
type Recorder interface {
	RecordLoad(ctx context.Context, kind model.ReportKind, res report.Result) error
}

// Snapshot 一次完整加载的结果
type Snapshot struct {
	LoadedAt time.Time                          `json:"loadedAt"`
	Reports  ReportSet                          `json:"-"`
	Results  map[model.ReportKind]report.Result `json:"results"`
}

// Service 每次请求都重新加载三份报表并生成视图
type Service struct {
	source   Source
	keywords Keywords
	recorder Recorder
	log      *zap.Logger
}

// NewService 创建看板服务；recorder 可为 nil
func NewService(source Source, keywords Keywords, recorder Recorder, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		source:   source,
		keywords: keywords,
		recorder: recorder,
		log:      log,
	}
}

// Keywords 当前关键字配置
func (s *Service) Keywords() Keywords {
	return s.keywords
}

// Snapshot 加载三份报表
func (s *Service) Snapshot(ctx context.Context) Snapshot {
	log := logger.WithContext(ctx, s.log)

	snap := Snapshot{
		LoadedAt: time.Now(),
		Reports:  ReportSet{Keywords: s.keywords},
		Results:  make(map[model.ReportKind]report.Result, len(model.ReportKinds)),
	}

	for _, kind := range model.ReportKinds {
		res := s.source.Inspect(s.keywords.For(kind))
		snap.Results[kind] = res

		if res.Found {
			switch kind {
			case model.ReportDocs:
				snap.Reports.Docs = res.Report
			case model.ReportFlujo:
				snap.Reports.Flujo = res.Report
			case model.ReportHistorial:
				snap.Reports.Historial = res.Report
			}
		} else if res.Err != nil && res.File != nil {
			log.Warn("report unavailable",
				zap.String("kind", string(kind)),
				zap.String("file", res.File.Name),
				zap.Error(res.Err))
		}

		if s.recorder != nil {
			if err := s.recorder.RecordLoad(ctx, kind, res); err != nil {
				log.Warn("record load history failed", zap.String("kind", string(kind)), zap.Error(err))
			}
		}
	}

	return snap
}

// View 加载并生成视图
func (s *Service) View(ctx context.Context, selected string) View {
	return Build(s.Snapshot(ctx).Reports, selected)
}
