package logging_test

import (
	"github.com/grovetools/atlas/logging"
	"github.com/sirupsen/logrus"
)

func ExampleNewLogger() {
	log := logging.NewLogger("my-component")

	log.Debug("Debug information")
	log.Info("Starting load")

	log.WithFields(logrus.Fields{
		"attempt": "3f6c",
		"count":   250,
	}).Info("Countries received")
}

func ExampleNewLogger_configuration() {
	// Configuration via atlas.yml:
	//
	// logging:
	//   level: debug
	//   report_caller: true
	//   file:
	//     enabled: true
	//     path: ~/.local/state/atlas/atlas.log
	//   format:
	//     preset: simple
	//     structured_to_stderr: never
	log := logging.NewLogger("server")
	log.Info("Configured from atlas.yml")
}
