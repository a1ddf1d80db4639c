package main

import "time"

type Config struct {
	BufferSize                int           `env:"BUFFER_SIZE,required=true"`
	ModerationCharReplacement string        `env:"MODERATION_CHARACTER_REPLACEMENT,required=true"`
	PageLimit                 *int          `env:"PAGE_LIMIT"`
	SinkTimeout               time.Duration `env:"SINK_TIMEOUT,required=true"`
	MonitorInterval           time.Duration `env:"MONITOR_INTERVAL,required=true"`
	RestartInterval           time.Duration `env:"RESTART_INTERVAL,required=true"`
	AuthTokenDuration         time.Duration `env:"AUTH_TOKEN_DURATION,required=true"`
	SearchLimit               int           `env:"SEARCH_LIMIT,required=true"`
	BadgerFilepath            string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath             string        `env:"BLUGE_FILEPATH,required=true"`
	LogLevel                  string        `env:"LOG_LEVEL,required=true"`
	Projects                  string        `env:"PROJECTS,required=true"`
	DebugPort                 int           `env:"DEBUG_PORT,default=8089"`
	EnableDebugServer         bool          `env:"ENABLE_DEBUG_SERVER,default=false"`
}
