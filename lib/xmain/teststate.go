package xmain

import (
	"bytes"
	"context"
	"io"
	"strings"

	"oss.terrastruct.com/cmdlog"
	"oss.terrastruct.com/xos"
)

// TestState runs a RunFunc in process with captured stdio.
type TestState struct {
	Run   RunFunc
	Env   *xos.Env
	Args  []string
	PWD   string
	Stdin string

	Stdout *bytes.Buffer
	Stderr *bytes.Buffer
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Exec runs ts.Run to completion. Args[0] is the program name.
func (ts *TestState) Exec(ctx context.Context) error {
	if ts.Env == nil {
		ts.Env = xos.NewEnv(nil)
	}
	ts.Stdout = &bytes.Buffer{}
	ts.Stderr = &bytes.Buffer{}

	name := ""
	var args []string
	if len(ts.Args) > 0 {
		name = ts.Args[0]
		args = ts.Args[1:]
	}

	ms := &State{
		Name:   name,
		Stdin:  strings.NewReader(ts.Stdin),
		Stdout: nopWriteCloser{ts.Stdout},
		Stderr: nopWriteCloser{ts.Stderr},
		Env:    ts.Env,
		PWD:    ts.PWD,
	}
	ms.Log = cmdlog.Log(ms.Env, ms.Stderr)
	ms.Opts = NewOpts(ms.Env, ms.Log, args)
	return ms.Main(ctx, nil, ts.Run)
}
