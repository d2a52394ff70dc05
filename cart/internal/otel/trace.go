package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/Alturino/grocery/internal/constants"
)

var Tracer = otel.Tracer(constants.AppCartService)
