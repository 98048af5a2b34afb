// Package autoload initializes the global logger from the environment as a
// side effect of being imported.
package autoload

import logx "github.com/eshvartz/pharmacy-agent/pkg/logger"

func init() {
	logx.Init(logx.FromEnv())
}
