package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"xtdbg/debug"
	"xtdbg/emu"
	"xtdbg/hw"
)

const version = "0.1.0"

func main() {
	cfg := parseArgs(os.Args[1:])

	switch cfg.mode {
	case versionMode:
		fmt.Println("xtdbgd", version)
		return
	default:
		runServe(cfg.Serve)
	}
}

func runServe(s Serve) {
	econf := emu.LoadConfigOrDefault()
	if s.GDBPort != 0 {
		econf.GDB.Port = s.GDBPort
	}
	if s.QMPPort != 0 {
		econf.QMP.Port = s.QMPPort
	}
	if s.NoGDB {
		econf.GDB.Enabled = false
	}
	if s.NoQMP {
		econf.QMP.Enabled = false
	}

	memSize := s.MemSize
	if memSize <= 0 {
		memSize = 1 << 20
	}
	machine := hw.NewMachine(uint32(memSize))

	srv := debug.NewServer(machine, econf)
	checkf(srv.Start(), "failed to start debug server")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	checkf(srv.Stop(), "failed to stop debug server cleanly")
}
