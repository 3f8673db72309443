// Package access decides what a caller may do with a resource. Every
// handler asks Resolve or ListScope instead of comparing ids by itself.
package access

type (
	Resource uint8

	Operation uint16

	// Set is a bitmask of permitted operations.
	Set uint16

	// Owner locates a concrete resource in the ownership tree.
	//   Doctor:  DoctorID is the doctor record itself.
	//   Patient: DoctorID is the owning doctor, PatientID the patient.
	//   Laudo:   same as Patient, taken from the laudo's patient.
	Owner struct {
		DoctorID  string
		PatientID string
	}

	// Scope restricts a listing. All wins over the id fields.
	Scope struct {
		All       bool
		DoctorID  string
		PatientID string
	}
)

const (
	ResourceDoctor Resource = iota + 1
	ResourcePatient
	ResourceLaudo
	ResourceBackup
)

const (
	OpRead Operation = 1 << iota
	OpCreate
	OpUpdate
	OpChangeRole
	OpDeactivate
	OpRestore
	OpDownload
)

func (s Set) Has(op Operation) bool { return Set(op)&s == Set(op) }

func (s Set) with(ops ...Operation) Set {
	for _, op := range ops {
		s |= Set(op)
	}
	return s
}

// Resolve returns the operations c may perform on the resource described by o.
// Ownership is checked first and the DOCTOR_ADMIN override is layered on top.
func Resolve(c Claims, r Resource, o Owner) Set {
	var s Set

	switch r {
	case ResourceDoctor:
		if !c.IsAdmin() {
			return 0
		}
		s = s.with(OpRead, OpCreate, OpUpdate, OpRestore)
		if o.DoctorID != c.DoctorID {
			s = s.with(OpChangeRole, OpDeactivate)
		}

	case ResourcePatient:
		if c.IsDoctor() {
			s = s.with(OpCreate)
			owner := o.DoctorID != "" && o.DoctorID == c.DoctorID
			if owner || c.IsAdmin() {
				s = s.with(OpRead, OpUpdate, OpDeactivate, OpRestore)
			}
		}
		if c.IsPatient() && o.PatientID == c.PatientID {
			s = s.with(OpRead)
		}

	case ResourceLaudo:
		if c.IsDoctor() {
			if o.DoctorID != "" && o.DoctorID == c.DoctorID {
				s = s.with(OpRead, OpCreate)
			} else if c.IsAdmin() {
				s = s.with(OpRead)
			}
		}
		if c.IsPatient() && o.PatientID == c.PatientID {
			s = s.with(OpRead)
		}

	case ResourceBackup:
		if c.IsAdmin() {
			s = s.with(OpDownload)
		}
	}

	return s
}

// ListScope returns the rows c may list for r, or false when c may not list r at all.
func ListScope(c Claims, r Resource) (Scope, bool) {
	switch r {
	case ResourceDoctor:
		if c.IsAdmin() {
			return Scope{All: true}, true
		}
	case ResourcePatient:
		if c.IsAdmin() {
			return Scope{All: true}, true
		}
		if c.IsDoctor() {
			return Scope{DoctorID: c.DoctorID}, true
		}
	case ResourceLaudo:
		if c.IsAdmin() {
			return Scope{All: true}, true
		}
		if c.IsDoctor() {
			return Scope{DoctorID: c.DoctorID}, true
		}
		if c.IsPatient() {
			return Scope{PatientID: c.PatientID}, true
		}
	}

	return Scope{}, false
}
