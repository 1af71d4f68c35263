package activity

// InternedEvent describes a fresh entry admitted to a pool.
func InternedEvent(kind, text string, liveness int64) Event {
	return Event{
		Verb:     VerbInterned,
		Kind:     kind,
		Text:     text,
		Liveness: liveness,
	}
}

// ReleasedEvent describes a handle drop that left the entry live.
func ReleasedEvent(kind, text string, liveness int64) Event {
	return Event{
		Verb:     VerbReleased,
		Kind:     kind,
		Text:     text,
		Liveness: liveness,
	}
}

// ReclaimedEvent describes an entry removed on its final release.
func ReclaimedEvent(kind, text string) Event {
	return Event{
		Verb: VerbReclaimed,
		Kind: kind,
		Text: text,
	}
}

// RejectedEvent describes a candidate value refused by the kind's validator.
func RejectedEvent(kind, text string, err error) Event {
	return Event{
		Verb: VerbRejected,
		Kind: kind,
		Text: text,
		Err:  err,
	}
}
