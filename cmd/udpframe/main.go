package main

import (
	"github.com/sirupsen/logrus"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("udpframe failed")
		os.Exit(1)
	}
}
