package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/koskimas/msggen/internal/check"
	"github.com/koskimas/msggen/internal/config"
	"github.com/koskimas/msggen/internal/gen"
	"github.com/koskimas/msggen/internal/hash"
	"github.com/koskimas/msggen/internal/model"
	"github.com/koskimas/msggen/internal/model/zcm"
	"github.com/koskimas/msggen/internal/plan"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/sync/errgroup"
)

const configFile = "msggen.yaml"

type Settings struct {
	WorkingDir string

	// PlanOutput receives a textual dump of every plan when set.
	PlanOutput io.Writer
}

func Run(s Settings) error {
	config, err := config.Read(filepath.Join(s.WorkingDir, configFile))
	if err != nil {
		return err
	}

	cat, err := readStructs(s, *config)
	if err != nil {
		return err
	}

	if err := check.Catalog(cat); err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}

	if err := hash.New(cat).All(); err != nil {
		return err
	}

	plans, err := buildPlans(cat)
	if err != nil {
		return err
	}

	if s.PlanOutput != nil {
		if err := dumpPlans(s.PlanOutput, plans); err != nil {
			return err
		}
	}

	g := gen.New(filepath.Join(s.WorkingDir, config.Output.Dir), config.Output.Package.Path)
	if err := g.CheckNames(cat); err != nil {
		return err
	}

	return generate(g, plans)
}

// readStructs reads the structs of every schema file matched by
// `cfg.Schemas`. Files matched by more than one glob are read once.
func readStructs(s Settings, cfg config.Config) (*model.Catalog, error) {
	zcmFiles, err := getZcmFiles(s, cfg)
	if err != nil {
		return nil, err
	}

	paths := maps.Keys(zcmFiles)
	slices.Sort(paths)

	cat, err := zcm.ReadStructs(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to read schemas: %w", err)
	}

	Logger().Info("read schemas",
		zap.Int("files", len(paths)),
		zap.Int("structs", len(cat.Structs)),
	)

	return cat, nil
}

// getZcmFiles resolves and returns all schema file paths in the keys of the
// returned map. The values are the corresponding `config.Schema` entries.
func getZcmFiles(s Settings, cfg config.Config) (map[string]config.Schema, error) {
	paths := make(map[string]config.Schema)

	for _, c := range cfg.Schemas {
		path := filepath.Join(s.WorkingDir, c.Path)

		files, err := filepath.Glob(path)
		if err != nil {
			return nil, fmt.Errorf(`failed to resolve schema files using glob "%s": %w`, c.Path, err)
		}

		if len(files) == 0 {
			return nil, fmt.Errorf(`no schema files match "%s"`, c.Path)
		}

		for _, f := range files {
			paths[f] = c
		}
	}

	return paths, nil
}

func buildPlans(cat *model.Catalog) ([]*plan.Plan, error) {
	plans := make([]*plan.Plan, 0, len(cat.Structs))

	for _, s := range cat.Structs {
		p, err := plan.Build(s)
		if err != nil {
			return nil, err
		}

		Logger().Debug("built plan",
			zap.String("struct", s.FullName()),
			zap.String("fingerprint", fmt.Sprintf("0x%016x", p.Fingerprint)),
		)

		plans = append(plans, p)
	}

	return plans, nil
}

func dumpPlans(w io.Writer, plans []*plan.Plan) error {
	for _, p := range plans {
		if _, err := fmt.Fprintln(w, p.String()); err != nil {
			return err
		}
	}

	return nil
}

// generate renders and writes the plans in parallel.
func generate(g *gen.Generator, plans []*plan.Plan) error {
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for _, p := range plans {
		p := p

		eg.Go(func() error {
			_, err := g.Write(p)
			return err
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}

	Logger().Info("generated code", zap.Int("files", len(plans)))
	return nil
}
