package mq

import (
	"time"

	"github.com/google/uuid"
)

// Routing keys, "<resource>.<action>".
const (
	DoctorCreated      = "doctor.created"
	DoctorUpdated      = "doctor.updated"
	DoctorDeactivated  = "doctor.deactivated"
	DoctorReactivated  = "doctor.reactivated"
	PatientCreated     = "patient.created"
	PatientUpdated     = "patient.updated"
	PatientDeactivated = "patient.deactivated"
	PatientReactivated = "patient.reactivated"
	LaudoCreated       = "laudo.created"
)

// BindingKeys covers every routing key above.
var BindingKeys = []string{"doctor.*", "patient.*", "laudo.*"}

type Event struct {
	Id      uuid.UUID `json:"event_id"`
	TS      time.Time `json:"time_stamp"`
	Type    string    `json:"event_type"`
	ActorID string    `json:"actor_id"`
	Subject string    `json:"subject_id"`
	Payload any       `json:"payload,omitempty"`
}

func NewEvent(typ, actorID, subject string, payload any) Event {
	return Event{
		Id:      uuid.New(),
		TS:      time.Now().UTC(),
		Type:    typ,
		ActorID: actorID,
		Subject: subject,
		Payload: payload,
	}
}
