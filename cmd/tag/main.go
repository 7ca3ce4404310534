package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Qix-/tag/cmds"
	"github.com/Qix-/tag/logs"
	"github.com/Qix-/tag/modes"
	"github.com/Qix-/tag/tagfiles"
	"github.com/reusee/dscope"
)

const version = "1.0.0"

func init() {
	cmds.Define("-V", cmds.Func(func() {
		fmt.Fprintln(os.Stderr, version)
		os.Exit(cmds.ExitUsage)
	}).Alias("--version").Desc("print version"))
}

func main() {
	cmds.Execute(os.Args[1:])

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var code int
	dscope.New(
		new(tagfiles.Module),
		modes.ForProduction(),
	).Call(func(
		newSpan logs.NewSpan,
		run tagfiles.Run,
		report tagfiles.Report,
	) {
		ctx, _ := newSpan(ctx, "")
		code = report(ctx, run(ctx))
	})

	cancel()
	os.Exit(code)
}
