package report

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Dvmian56/dashboard-control-anglo/internal/model"
)

// Result 一次加载的详细结果
type Result struct {
	Keyword    string        `json:"keyword"`
	Found      bool          `json:"found"`
	File       *Candidate    `json:"file,omitempty"`
	Candidates int           `json:"candidates"`
	Report     *model.Report `json:"-"`
	Err        error         `json:"-"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Loader 报表加载器：每次调用都重新扫描目录，不做缓存
type Loader struct {
	dir   string
	stamp TimestampFunc
	log   *zap.Logger
}

// Option 加载器选项
type Option func(*Loader)

// WithTimestamp 替换创建时间的获取方式
func WithTimestamp(fn TimestampFunc) Option {
	return func(l *Loader) {
		if fn != nil {
			l.stamp = fn
		}
	}
}

// WithLogger 设置日志器
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLoader 创建加载器
func NewLoader(dir string, opts ...Option) *Loader {
	l := &Loader{
		dir:   dir,
		stamp: CreatedAt,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dir 扫描目录
func (l *Loader) Dir() string {
	return l.dir
}

// Load 加载关键字对应的最新报表；未找到或解析失败时返回 (nil, false)
func (l *Loader) Load(keyword string) (*model.Report, bool) {
	res := l.Inspect(keyword)
	return res.Report, res.Found
}

// Inspect 与 Load 相同，但保留所选文件与失败原因
func (l *Loader) Inspect(keyword string) Result {
	start := time.Now()
	res := Result{Keyword: keyword}

	candidates, err := Candidates(l.dir, keyword, l.stamp)
	if err != nil {
		res.Err = fmt.Errorf("scan %s: %w", l.dir, err)
		l.log.Warn("report scan failed", zap.String("keyword", keyword), zap.Error(err))
		return l.finish(res, start)
	}
	res.Candidates = len(candidates)

	newest, ok := Newest(candidates)
	if !ok {
		res.Err = ErrNoCandidate
		l.log.Debug("no report file", zap.String("keyword", keyword), zap.String("dir", l.dir))
		return l.finish(res, start)
	}
	res.File = &newest

	report, err := parseFile(newest)
	if err != nil {
		res.Err = fmt.Errorf("parse %s: %w", newest.Name, err)
		l.log.Warn("report parse failed",
			zap.String("keyword", keyword),
			zap.String("file", newest.Name),
			zap.Error(err))
		return l.finish(res, start)
	}

	res.Report = report
	res.Found = true
	l.log.Debug("report loaded",
		zap.String("keyword", keyword),
		zap.String("file", newest.Name),
		zap.Int("rows", report.Len()),
		zap.Int("candidates", len(candidates)))
	return l.finish(res, start)
}

func (l *Loader) finish(res Result, start time.Time) Result {
	res.Elapsed = time.Since(start)
	return res
}

func parseFile(c Candidate) (*model.Report, error) {
	switch c.Ext() {
	case extCSV:
		return LoadCSV(c.Path)
	case extXLSX:
		return LoadXLSX(c.Path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, c.Ext())
	}
}

// Load 在 dir 中加载 keyword 对应的最新报表
func Load(keyword, dir string) (*model.Report, bool) {
	return NewLoader(dir).Load(keyword)
}
