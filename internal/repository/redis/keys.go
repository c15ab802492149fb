package redisrepo

import "fmt"

const ns = "eventbuzz:v1"

func KeyEventDetail(eventID string) string {
	return fmt.Sprintf("%s:event:%s:detail", ns, eventID)
}

func KeyEventList() string {
	return ns + ":events:list"
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func KeyIdemCheckout(eventID, actorID, idemKey string) string {
	return fmt.Sprintf("%s:idem:checkout:%s:%s:%s", ns, eventID, actorID, idemKey)
}

func ChannelEventsChanged() string {
	return ns + ":events:changed"
}
