package registry

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kymoja/darasa/core"
)

// Person kinds
const (
	KindStudent = "student"
	KindFaculty = "faculty"
	KindStaff   = "staff"
)

var Kinds = []string{KindStudent, KindFaculty, KindStaff}

// ScopeAttrs are the organizational coordinates of a Person. They are the
// dimensions every cohort filter composes over.
type ScopeAttrs struct {
	Institution   string `json:"institution"`
	Department    string `json:"department"`
	AdmissionYear int    `json:"admission_year"`
	RollNo        string `json:"roll_no"`
}

// Person identifies a student, faculty or staff member. Immutable once created;
// its ID is the join key for every transaction log.
type Person struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Kind      string     `json:"kind"`
	Scope     ScopeAttrs `json:"scope"`
	CreatedAt time.Time  `json:"created_at"` // UTC
}

func (p *Person) IsStudent() bool { return p.Kind == KindStudent }

// StudentID composes the structured student identifier:
// institution, department, admission year and a zero-padded sequence number.
func StudentID(institution, department string, admissionYear, seq int) string {
	return fmt.Sprintf("%s-%s-%d-%03d", institution, department, admissionYear, seq)
}

// ParseStudentID recovers the scope attributes encoded in a student ID.
func ParseStudentID(id string) (ScopeAttrs, error) {
	parts := strings.Split(id, "-")
	if len(parts) != 4 {
		return ScopeAttrs{}, fmt.Errorf("malformed student id %q", id)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return ScopeAttrs{}, fmt.Errorf("malformed admission year in %q", id)
	}
	return ScopeAttrs{
		Institution:   parts[0],
		Department:    parts[1],
		AdmissionYear: year,
		RollNo:        parts[3],
	}, nil
}

// NewPerson contains information needed to register a new Person.
type NewPerson struct {
	Name          string `json:"name" validate:"required"`
	Kind          string `json:"kind" validate:"required,oneof=student faculty staff"`
	Institution   string `json:"institution" validate:"required"`
	Department    string `json:"department" validate:"required"`
	AdmissionYear int    `json:"admission_year" validate:"required_if=Kind student,omitempty,min=1990"`
	Seq           int    `json:"seq" validate:"required_if=Kind student,omitempty,min=1"`
}

func (np *NewPerson) Validate(validate *validator.Validate) error {
	np.Name = core.CleanString(np.Name)
	np.Kind = strings.ToLower(core.CleanString(np.Kind))
	np.Institution = core.CleanString(np.Institution, true /* upper */)
	np.Department = core.CleanString(np.Department, true /* upper */)
	return validate.Struct(np)
}

// QueryFilter selects a population. Empty fields do not restrict; set fields
// compose by logical AND.
type QueryFilter struct {
	Institution   string `query:"institution"`
	Department    string `query:"department"`
	AdmissionYear int    `query:"admission_year"`
	RollNo        string `query:"roll_no"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Institution == "" && qf.Department == "" && qf.AdmissionYear == 0 && qf.RollNo == ""
}

func (qf *QueryFilter) Clean() {
	qf.Institution = core.CleanString(qf.Institution, true /* upper */)
	qf.Department = core.CleanString(qf.Department, true /* upper */)
	qf.RollNo = core.CleanString(qf.RollNo)
}

// Matches reports whether the person falls within the filtered scope.
func (qf *QueryFilter) Matches(p Person) bool {
	if qf.Institution != "" && p.Scope.Institution != qf.Institution {
		return false
	}
	if qf.Department != "" && p.Scope.Department != qf.Department {
		return false
	}
	if qf.AdmissionYear != 0 && p.Scope.AdmissionYear != qf.AdmissionYear {
		return false
	}
	if qf.RollNo != "" && p.Scope.RollNo != qf.RollNo {
		return false
	}
	return true
}
