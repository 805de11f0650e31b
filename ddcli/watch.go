package ddcli

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/docdiag/docdiag/ddlib"
	"github.com/docdiag/docdiag/lib/xmain"
)

type watcher struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	ms         *xmain.State
	lopts      *ddlib.LayoutOptions
	inputPath  string
	outputPath string

	layoutCh chan struct{}
	fw       *fsnotify.Watcher

	errMu sync.Mutex
	err   error
}

func newWatcher(ctx context.Context, ms *xmain.State, inputPath, outputPath string, lopts *ddlib.LayoutOptions) (*watcher, error) {
	ctx, cancel := context.WithCancel(ctx)

	w := &watcher{
		ctx:    ctx,
		cancel: cancel,

		ms:         ms,
		lopts:      lopts,
		inputPath:  ms.AbsPath(inputPath),
		outputPath: outputPath,

		layoutCh: make(chan struct{}, 1),
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		cancel()
		return nil, err
	}
	w.fw = fw
	return w, nil
}

func (w *watcher) run() error {
	defer w.close()

	w.goFunc(w.watchLoop)
	w.goFunc(w.layoutLoop)

	w.wg.Wait()
	w.close()
	return w.err
}

func (w *watcher) close() {
	w.cancel()
	if w.fw != nil {
		err := w.fw.Close()
		w.setErr(err)
	}
}

func (w *watcher) setErr(err error) {
	w.errMu.Lock()
	if w.err == nil {
		w.err = err
	}
	w.errMu.Unlock()
}

func (w *watcher) goFunc(fn func(context.Context) error) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.cancel()

		err := fn(w.ctx)
		w.setErr(err)
	}()
}

// watchLoop batches bursts of events on the input into one layout request. Editors often
// emit a chmod, a write and another chmod for one save.
func (w *watcher) watchLoop(ctx context.Context) error {
	lastModified := make(map[string]time.Time)

	mt, err := w.ensureAddWatch(ctx, w.inputPath)
	if err != nil {
		return err
	}
	lastModified[w.inputPath] = mt
	w.ms.Log.Info.Printf("laying out %v...", w.ms.HumanPath(w.inputPath))
	w.requestLayout()

	eatBurstTimer := time.NewTimer(0)
	<-eatBurstTimer.C
	pollTicker := time.NewTicker(time.Second * 10)
	defer pollTicker.Stop()

	changed := false

	for {
		select {
		case <-pollTicker.C:
			// Some editors replace the file, which silently drops the watch.
			mt, err := w.ensureAddWatch(ctx, w.inputPath)
			if err != nil {
				return err
			}
			if !mt.Equal(lastModified[w.inputPath]) {
				lastModified[w.inputPath] = mt
				w.requestLayout()
			}
		case ev, ok := <-w.fw.Events:
			if !ok {
				return errors.New("fsnotify watcher closed")
			}
			w.ms.Log.Debug.Printf("received file system event %v", ev)
			mt, err := w.ensureAddWatch(ctx, w.inputPath)
			if err != nil {
				return err
			}
			if ev.Op == fsnotify.Chmod {
				if mt.Equal(lastModified[w.inputPath]) {
					continue
				}
			}
			lastModified[w.inputPath] = mt
			changed = true
			eatBurstTimer.Reset(time.Millisecond * 16)
		case <-eatBurstTimer.C:
			if !changed {
				continue
			}
			changed = false
			w.ms.Log.Info.Printf("detected change in %s: laying out again...", w.ms.HumanPath(w.inputPath))
			w.requestLayout()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return errors.New("fsnotify watcher closed")
			}
			w.ms.Log.Error.Printf("fsnotify error: %v", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *watcher) requestLayout() {
	select {
	case w.layoutCh <- struct{}{}:
	default:
	}
}

// ensureAddWatch retries with backoff until the input exists again.
func (w *watcher) ensureAddWatch(ctx context.Context, path string) (time.Time, error) {
	interval := time.Millisecond * 16
	tc := time.NewTimer(0)
	<-tc.C
	for {
		mt, err := w.addWatch(path)
		if err == nil {
			return mt, nil
		}
		if interval >= time.Second {
			w.ms.Log.Error.Printf("failed to watch %q: %v (retrying in %v)", w.ms.HumanPath(path), err, interval)
		}

		tc.Reset(interval)
		select {
		case <-tc.C:
			if interval < time.Second {
				interval = time.Second
			}
			if interval < time.Second*16 {
				interval *= 2
			}
		case <-ctx.Done():
			return time.Time{}, ctx.Err()
		}
	}
}

func (w *watcher) addWatch(path string) (time.Time, error) {
	err := w.fw.Add(path)
	if err != nil {
		return time.Time{}, err
	}
	d, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return d.ModTime(), nil
}

// layoutLoop never exits on a layout failure so the next save can fix it.
func (w *watcher) layoutLoop(ctx context.Context) error {
	for {
		select {
		case <-w.layoutCh:
		case <-ctx.Done():
			return ctx.Err()
		}

		err := layoutFile(ctx, w.ms, w.lopts, w.inputPath, w.outputPath)
		if err != nil {
			w.ms.Log.Error.Printf("failed to lay out: %v", err)
		}
	}
}
