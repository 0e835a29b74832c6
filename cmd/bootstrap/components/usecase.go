package components

import (
	"zoea-booking/internal/domain/booking"
	"zoea-booking/internal/pkg/clock"
	"zoea-booking/internal/usecase/commands"
	"zoea-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		booking.NewStandardPriceCalculator,
		fx.As(new(booking.PriceCalculator)),
	),
	fx.Annotate(
		booking.NewFullRefundPolicy,
		fx.As(new(booking.RefundPolicy)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
	),
)
