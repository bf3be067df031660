package main

import (
	"flag"
	"io"
	"log"
	"log/syslog"
	"os"
)

func logdefault() *log.Logger {
	return log.New(os.Stderr, "", log.LstdFlags)
}

var elog = logdefault()
var ilog = logdefault()
var dlog = logdefault()

var elogname, ilogname, dlogname string

func init() {
	flag.StringVar(&elogname, "errorlog", "", "error log file (or stderr, stdout, null, syslog)")
	flag.StringVar(&ilogname, "infolog", "", "info log file (or stderr, stdout, null, syslog)")
	flag.StringVar(&dlogname, "debuglog", "", "debug log file (or stderr, stdout, null, syslog)")
}

// initLogging opens the three loggers. A log without a name given on the
// command line goes to fallback: the viewer owns the terminal, so it passes
// "null".
func initLogging(fallback string) {
	elog = openlog(orDefault(elogname, fallback), syslog.LOG_ERR)
	ilog = openlog(orDefault(ilogname, fallback), syslog.LOG_INFO)
	dlog = openlog(orDefault(dlogname, fallback), syslog.LOG_DEBUG)
}

func orDefault(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

func openlog(name string, prio syslog.Priority) *log.Logger {
	if name == "stderr" {
		return log.New(os.Stderr, "", log.LstdFlags)
	}
	if name == "stdout" {
		return log.New(os.Stdout, "", log.LstdFlags)
	}
	if name == "null" {
		return log.New(io.Discard, "", log.LstdFlags)
	}
	if name == "syslog" {
		w, err := syslog.New(syslog.LOG_USER|prio, "qview")
		if err != nil {
			elog.Printf("can't create syslog: %s", err)
			return logdefault()
		}
		return log.New(w, "", log.LstdFlags)
	}
	fd, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		elog.Printf("can't open log file %s: %s", name, err)
		return logdefault()
	}
	logger := log.New(fd, "", log.LstdFlags)
	logger.Printf("new log started")
	return logger
}
