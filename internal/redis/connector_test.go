package redis

import (
	"context"
	"testing"
	"time"

	"github.com/MrSnakeDoc/wfdscore/internal/logger"
)

func validOptions() ConnectOptions {
	return ConnectOptions{
		Addr:           "127.0.0.1:1",
		ConnectTimeout: 30 * time.Second,
		RetryInterval:  2 * time.Second,
		MaxWait:        10 * time.Second,
		PingTimeout:    5 * time.Second,
		WarnThreshold:  3,
	}
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ConnectOptions)
		wantErr bool
	}{
		{name: "valid", mutate: func(*ConnectOptions) {}},
		{name: "zero connect timeout", mutate: func(o *ConnectOptions) { o.ConnectTimeout = 0 }, wantErr: true},
		{name: "zero retry interval", mutate: func(o *ConnectOptions) { o.RetryInterval = 0 }, wantErr: true},
		{name: "zero max wait", mutate: func(o *ConnectOptions) { o.MaxWait = 0 }, wantErr: true},
		{name: "zero ping timeout", mutate: func(o *ConnectOptions) { o.PingTimeout = 0 }, wantErr: true},
		{name: "negative warn threshold", mutate: func(o *ConnectOptions) { o.WarnThreshold = -1 }, wantErr: true},
	}

	cl := &connectionLogger{logger: logger.New("error", false)}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.mutate(&opts)
			if err := cl.validateOptions(opts); (err != nil) != tt.wantErr {
				t.Errorf("validateOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNextWait(t *testing.T) {
	wait := 2 * time.Second
	want := []time.Duration{4 * time.Second, 8 * time.Second, 10 * time.Second, 10 * time.Second}
	for i, w := range want {
		wait = nextWait(wait, 10*time.Second)
		if wait != w {
			t.Errorf("step %d: nextWait() = %v, want %v", i, wait, w)
		}
	}
}

func TestNewGivesUpWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := validOptions()
	opts.PingTimeout = 100 * time.Millisecond
	opts.RetryInterval = 50 * time.Millisecond

	if _, err := New(ctx, opts, logger.New("error", false)); err == nil {
		t.Error("New() with a cancelled context should fail")
	}
}
