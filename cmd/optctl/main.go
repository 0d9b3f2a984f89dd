package main

import (
	"context"
	"os"

	"khetao.com/optkit/app"
	"khetao.com/optkit/log"
	"khetao.com/optkit/shutdown"
	"khetao.com/optkit/shutdown/manager"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sd := shutdown.New(func(err error) { log.Errorf("shutdown: %v", err) })
	sd.AddCallback(shutdown.Func(func(string) error { return log.Sync() }))
	sd.AddTrigger(manager.NewPosixSignalManager())
	if err := sd.Start(ctx); err != nil {
		log.Errorf("start shutdown triggers: %v", err)
		return 1
	}

	a := app.New("optctl",
		app.WithDescription("Inspect and parse the command-line options of registered schemes"))
	err := a.Run()
	_ = log.Sync()
	if err != nil {
		return 1
	}
	return 0
}
