package batch

import (
	"context"

	"github.com/gerunddev/dokumd/internal/config"
	"github.com/gerunddev/dokumd/internal/convert"
	"github.com/gerunddev/dokumd/internal/logger"
	"github.com/gerunddev/dokumd/internal/pandoc"
)

// Engine turns one source page into Markdown
type Engine interface {
	Name() string
	Convert(ctx context.Context, srcPath string, content []byte, isRoot bool) (convert.Page, error)
}

// BuiltinEngine converts pages with the DokuWiki line pipeline
type BuiltinEngine struct {
	conv *convert.Converter
}

// NewBuiltinEngine wraps a page converter
func NewBuiltinEngine(conv *convert.Converter) *BuiltinEngine {
	return &BuiltinEngine{conv: conv}
}

func (e *BuiltinEngine) Name() string { return config.EngineBuiltin }

func (e *BuiltinEngine) Convert(_ context.Context, _ string, content []byte, isRoot bool) (convert.Page, error) {
	return e.conv.ConvertString(string(content), isRoot), nil
}

// PandocEngine converts pages by running pandoc on the source file. Pages
// come back without front matter and without a title.
type PandocEngine struct {
	runner *pandoc.Runner
	log    *logger.Logger
}

// NewPandocEngine wraps a pandoc runner. stderr from pandoc is logged at debug level.
func NewPandocEngine(runner *pandoc.Runner, log *logger.Logger) *PandocEngine {
	if log == nil {
		log = logger.Discard()
	}
	return &PandocEngine{runner: runner, log: log}
}

func (e *PandocEngine) Name() string { return config.EnginePandoc }

func (e *PandocEngine) Convert(ctx context.Context, srcPath string, _ []byte, _ bool) (convert.Page, error) {
	res, err := e.runner.ConvertFile(ctx, srcPath)
	if err != nil {
		return convert.Page{}, err
	}
	e.log.ToolOutput(e.runner.Binary, srcPath, res.Stderr)
	return convert.Page{Lines: convert.SplitLines(res.Markdown)}, nil
}

// NewEngine builds the engine selected in cfg
func NewEngine(cfg *config.Config, opts convert.Options, log *logger.Logger) Engine {
	if cfg.Engine == config.EnginePandoc {
		return NewPandocEngine(pandoc.New(cfg.Pandoc.Binary, cfg.Pandoc.Args), log)
	}
	return NewBuiltinEngine(convert.NewConverter(opts))
}
