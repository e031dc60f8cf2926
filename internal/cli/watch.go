package cli

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch runs r once, then again every time cfg.Input is written, created or
// renamed into place, until ctx is done. Failed runs are logged and do not
// stop the watch.
func Watch(ctx context.Context, r Runner, cfg *Config) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	// editors often replace the file on save, so watch its directory
	target := filepath.Clean(cfg.Input)
	dir := filepath.Dir(target)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %q: %w", dir, err)
	}

	runOnce := func() {
		if err := r.Run(cfg); err != nil {
			log.Printf("synext: warning: regenerate from %s: %v", cfg.Input, err)
		}
	}

	runOnce()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			runOnce()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("synext: warning: watch %s: %v", dir, err)
		}
	}
}
