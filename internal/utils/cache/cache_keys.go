// Package cache names redis keys as "<entity>:<kind>:<id>".
package cache

type Entity string

const (
	EntityRecipient   Entity = "recipient"
	EntityPayNowImage Entity = "paynow_png"
)

type Kind string

const (
	KindUserID  Kind = "user"
	KindPayload Kind = "payload"
)

const sep = ":"

func Key(entity Entity, kind Kind, id string) string {
	return string(entity) + sep + string(kind) + sep + id
}
