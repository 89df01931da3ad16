package cmd

import (
	"fmt"

	"github.com/josephgoksu/taskvoice/internal/actions"
	"github.com/josephgoksu/taskvoice/internal/config"
	"github.com/josephgoksu/taskvoice/store"
)

// openStore opens the task store described by the loaded configuration.
func openStore() (store.TaskStore, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	path := config.DataPath(appConfig)
	s, err := store.Open(store.Config{
		Backend: appConfig.Data.Backend,
		Path:    path,
		Format:  appConfig.Data.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("open task store at %s: %w", path, err)
	}
	appLogger().Debug("task store opened", "backend", appConfig.Data.Backend, "path", path)
	return s, nil
}

// withSurface opens the store, runs fn against an action surface and
// closes the store afterwards.
func withSurface(fn func(*actions.Surface) error) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			appLogger().Warn("close task store", "err", cerr)
		}
	}()
	return fn(actions.NewSurface(s, appLogger()))
}
