package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"tripplanner/internal/config"
	"tripplanner/internal/eval"
	"tripplanner/internal/llm"
	"tripplanner/internal/mock"
	"tripplanner/internal/tools"
	"tripplanner/internal/types"
)

// app holds the wiring shared by the LLM-backed commands.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	catalog *mock.Catalog
	client  llm.ChatClient
	env     *eval.Env
	suite   *eval.Suite
}

func newApp(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, err
	}
	logger := opts.logger()
	client, err := llm.New(ctx, cfg.LLMOptions(logger))
	if err != nil {
		return nil, err
	}
	catalog := mock.Default()
	logger.Printf("tripplanner: provider=%s model=%s", cfg.Provider, cfg.Model)
	return &app{
		cfg:     cfg,
		logger:  logger,
		catalog: catalog,
		client:  client,
		env:     eval.NewEnv(catalog, client, cfg.EvalOptions(logger)),
		suite:   eval.NewSuite(),
	}, nil
}

func (a *app) Close() error { return a.client.Close() }

func (a *app) toolSet(req *types.VacationRequest) *tools.Set {
	return &tools.Set{
		Catalog: a.catalog,
		Suite:   a.suite,
		Env:     a.env,
		Request: req,
		Logger:  a.logger,
	}
}

func loadRequest(path string) (types.VacationRequest, error) {
	if path == "" {
		return types.SampleVacationRequest(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.VacationRequest{}, err
	}
	req, err := types.DecodeVacationRequest(raw)
	if err != nil {
		return types.VacationRequest{}, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}

func loadPlan(path string) (types.TravelPlan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.TravelPlan{}, err
	}
	plan, err := types.DecodeTravelPlan(raw)
	if err != nil {
		return types.TravelPlan{}, fmt.Errorf("%s: %w", path, err)
	}
	return plan, nil
}

func writeJSON(dir, name string, v any) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	b, err := types.EncodeJSONIndent(v)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
