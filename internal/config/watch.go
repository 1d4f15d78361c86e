package config

import (
	"log"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file on change and delivers the new config to
// onChange. It blocks until the watcher fails; run it on its own goroutine.
// A config that fails to parse or validate is logged and skipped.
func Watch(path string, onChange func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		return err
	}

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := Load(path)
			if err != nil {
				log.Printf("[WARN] config reload failed: %v", err)
				continue
			}
			if err := cfg.Validate(); err != nil {
				log.Printf("[WARN] reloaded config invalid, keeping current: %v", err)
				continue
			}
			log.Printf("[INFO] config reloaded from %s", path)
			onChange(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("[WARN] config watcher error: %v", err)
		}
	}
}
