package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		usersRegisteredTotal,
		telegramUpdatesReceivedTotal,
		telegramSendFailuresTotal,
		updatesDeduplicatedTotal,
	)
}

var (
	usersRegisteredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total number of users stored on first contact.",
		},
	)

	telegramUpdatesReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_updates_received_total",
			Help: "Incoming updates by routed kind (start, generate, text, ignored).",
		},
		[]string{"kind"},
	)

	telegramSendFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_send_failures_total",
			Help: "Outbound Telegram calls that failed, by operation.",
		},
		[]string{"op"}, // 'text', 'sticker', 'delete'
	)

	updatesDeduplicatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "updates_deduplicated_total",
			Help: "Redelivered updates skipped because their update_id was already seen.",
		},
	)
)

func IncUsersRegistered() {
	usersRegisteredTotal.Inc()
}

func IncTelegramUpdate(kind string) {
	telegramUpdatesReceivedTotal.WithLabelValues(norm(kind)).Inc()
}

func IncTelegramSendFailure(op string) {
	telegramSendFailuresTotal.WithLabelValues(norm(op)).Inc()
}

func IncUpdateDeduplicated() {
	updatesDeduplicatedTotal.Inc()
}
