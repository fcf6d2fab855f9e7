package logger

import "go.uber.org/fx"

// Module wires the shared slog logger into the fx graph.
var Module = fx.Provide(New)
