package notification

import "go.uber.org/fx"

// Module provides the email composer.
var Module = fx.Provide(NewComposer)
