package tasks

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jesseduffield/lazytorrent/pkg/i18n"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// TaskManager runs at most one long running job at a time, e.g. hashing the
// pieces of a new torrent. Starting a new task stops the current one.
type TaskManager struct {
	currentTask  *Task
	waitingMutex deadlock.Mutex
	taskIDMutex  deadlock.Mutex
	Log          *logrus.Entry
	Tr           *i18n.TranslationSet
	newTaskId    int
	stopTimeout  time.Duration
}

type Task struct {
	stop          chan struct{}
	stopped       bool
	stopMutex     deadlock.Mutex
	notifyStopped chan struct{}
	Log           *logrus.Entry
	f             func(chan struct{})
}

func NewTaskManager(log *logrus.Entry, translationSet *i18n.TranslationSet) *TaskManager {
	return &TaskManager{Log: log, Tr: translationSet, stopTimeout: 3 * time.Second}
}

// Close closes the task manager, stopping whatever task may currently be running
func (t *TaskManager) Close() {
	t.waitingMutex.Lock()
	task := t.currentTask
	t.waitingMutex.Unlock()

	if task == nil {
		return
	}

	c := make(chan struct{}, 1)

	go func() {
		task.Stop()
		c <- struct{}{}
	}()

	select {
	case <-c:
		return
	case <-time.After(t.stopTimeout):
		fmt.Fprintln(os.Stderr, t.Tr.CannotStopTask)
	}
}

func (t *TaskManager) NewTask(f func(stop chan struct{})) error {
	return t.newTask(f, nil)
}

// newTask calls skipped instead of f when a newer task was queued before f got
// its turn
func (t *TaskManager) newTask(f func(stop chan struct{}), skipped func()) error {
	go func() {
		t.taskIDMutex.Lock()
		t.newTaskId++
		taskID := t.newTaskId
		t.taskIDMutex.Unlock()

		t.waitingMutex.Lock()
		defer t.waitingMutex.Unlock()
		t.taskIDMutex.Lock()
		superseded := taskID < t.newTaskId
		t.taskIDMutex.Unlock()
		if superseded {
			if skipped != nil {
				skipped()
			}
			return
		}

		stop := make(chan struct{}, 1) // we don't want to block on this in case the task already returned
		notifyStopped := make(chan struct{})

		if t.currentTask != nil {
			t.Log.Info("asking task to stop")
			t.currentTask.Stop()
			t.Log.Info("task stopped")
		}

		t.currentTask = &Task{
			stop:          stop,
			notifyStopped: notifyStopped,
			Log:           t.Log,
			f:             f,
		}

		go func() {
			f(stop)
			t.Log.Info("returned from function, closing notifyStopped")
			close(notifyStopped)
		}()
	}()

	return nil
}

// RunTask runs f as the current task and waits for it to return. The context
// handed to f is cancelled once the task gets stopped, e.g. by Close.
func (t *TaskManager) RunTask(ctx context.Context, f func(ctx context.Context) error) error {
	result := make(chan error, 1)

	err := t.newTask(func(stop chan struct{}) {
		taskCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		go func() {
			select {
			case <-stop:
				cancel()
			case <-taskCtx.Done():
			}
		}()

		result <- f(taskCtx)
	}, func() {
		result <- context.Canceled
	})
	if err != nil {
		return err
	}

	return <-result
}

func (t *Task) Stop() {
	t.stopMutex.Lock()
	defer t.stopMutex.Unlock()
	if t.stopped {
		return
	}
	close(t.stop)
	t.Log.Info("closed stop channel, waiting for notifyStopped message")
	<-t.notifyStopped
	t.Log.Info("received notifystopped message")
	t.stopped = true
}
