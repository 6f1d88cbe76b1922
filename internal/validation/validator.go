// Package validation holds the field rules every write path applies before
// anything is persisted. The same rules back the interactive single-field
// check exposed to front ends, so a record that passes there passes here.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/saxenaaman628/online-voting-system/internal/models"
)

var ErrUnknownField = errors.New("no validation rule for field")

var (
	fullNameRx = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phoneRx    = regexp.MustCompile(`^[0-9]{10}$`)
	emailRx    = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	titleRx    = regexp.MustCompile(`^[a-zA-Z0-9\s\-_]+$`)
	usernameRx = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	uidRx      = regexp.MustCompile(`^[A-Z0-9]+$`)
)

// FieldErrors maps a field name to the first rule it failed.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New builds a Validator. now is consulted for age and expiry checks; nil
// means time.Now.
func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := &Validator{validate: validator.New(), now: now}
	v.register()
	return v
}

func (v *Validator) register() {
	custom := map[string]validator.Func{
		"notblank": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
		"tmin": func(fl validator.FieldLevel) bool {
			return trimmedLen(fl) >= paramInt(fl)
		},
		"tmax": func(fl validator.FieldLevel) bool {
			return trimmedLen(fl) <= paramInt(fl)
		},
		"fullname":  trimmedMatch(fullNameRx),
		"title":     trimmedMatch(titleRx),
		"username":  trimmedMatch(usernameRx),
		"emailaddr": trimmedMatch(emailRx),
		"phone10": func(fl validator.FieldLevel) bool {
			return phoneRx.MatchString(stripSpace(fl.Field().String()))
		},
		"uid": func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return len(s) >= paramInt(fl) && uidRx.MatchString(s)
		},
		"intmin": func(fl validator.FieldLevel) bool {
			n, err := models.ParseLeadingInt(fl.Field().String())
			return err == nil && n >= paramInt(fl)
		},
		"intmax": func(fl validator.FieldLevel) bool {
			n, err := models.ParseLeadingInt(fl.Field().String())
			return err == nil && n <= paramInt(fl)
		},
		"date": func(fl validator.FieldLevel) bool {
			_, ok := models.ParseDate(fl.Field().String())
			return ok
		},
		"agerange": func(fl validator.FieldLevel) bool {
			birth, ok := models.ParseDate(fl.Field().String())
			if !ok {
				return false
			}
			lo, hi := paramRange(fl)
			age := Age(birth, v.now())
			return age >= lo && age <= hi
		},
		"future": func(fl validator.FieldLevel) bool {
			t, ok := models.ParseDate(fl.Field().String())
			return ok && t.After(v.now())
		},
		"imagesrc": func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return strings.HasPrefix(s, "data:image/") || strings.HasPrefix(s, "http")
		},
	}
	for tag, fn := range custom {
		if err := v.validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validation: register %s: %v", tag, err))
		}
	}
}

// Field checks one raw value. It returns the error message, or "" when the
// value is valid.
func (v *Validator) Field(entity Entity, field, value string) (string, error) {
	r, ok := rules[entity][field]
	if !ok {
		return "", fmt.Errorf("%w: %s.%s", ErrUnknownField, entity, field)
	}
	return v.apply(r, value), nil
}

func (v *Validator) apply(r rule, value string) string {
	err := v.validate.Var(value, r.tags)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := r.messages[verrs[0].Tag()]; ok {
			return msg
		}
	}
	return "Invalid value"
}

// check runs every rule of entity and reports all failing fields.
func (v *Validator) check(entity Entity, values map[string]string) error {
	errs := FieldErrors{}
	for field, r := range rules[entity] {
		if msg := v.apply(r, values[field]); msg != "" {
			errs[field] = msg
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (v *Validator) User(req models.RegisterRequest) error {
	return v.check(EntityUser, map[string]string{
		"username": req.Username,
		"email":    req.Email,
		"password": req.Password,
		"userType": req.UserType,
	})
}

func (v *Validator) Login(req models.LoginRequest) error {
	return v.check(EntityLogin, map[string]string{
		"email":    req.Email,
		"password": req.Password,
		"userType": req.UserType,
	})
}

func (v *Validator) Voter(m models.Voter) error {
	return v.check(EntityVoter, map[string]string{
		"full_name":    m.FullName,
		"phone_number": m.PhoneNumber,
		"email":        m.Email,
		"address":      m.Address,
		"birthdate":    m.Birthdate,
		"age":          string(m.Age),
		"user_id":      m.UserID,
		"image":        m.Image,
	})
}

func (v *Validator) Election(m models.ElectionForm) error {
	return v.check(EntityElection, map[string]string{
		"title":         m.Title,
		"numCandidates": intValue(int(m.NumCandidates)),
		"expiryDate":    m.ExpiryDate,
		"Uid":           m.Uid,
	})
}

func (v *Validator) Candidate(m models.Candidate) error {
	return v.check(EntityCandidate, map[string]string{
		"fullName":   m.FullName,
		"birthDate":  m.BirthDate,
		"age":        intValue(int(m.Age)),
		"email":      m.Email,
		"mobile":     m.Mobile,
		"address":    m.Address,
		"image":      m.Image,
		"voterIcon":  m.VoterIcon,
		"Uid":        m.Uid,
		"Form_Title": m.FormTitle,
		"Form_Id":    m.FormID,
	})
}

func (v *Validator) Vote(p models.VotePayload) error {
	return v.check(EntityVote, map[string]string{
		"candidateUid": p.CandidateUID,
		"voterId":      p.VoterID,
		"formId":       p.FormID,
		"formTitle":    p.FormTitle,
	})
}

// Age is whole years between birth and now: the year difference, less one
// when now has not yet reached the birthday within its year.
func Age(birth, now time.Time) int {
	now = now.In(birth.Location())
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// a zero numeric field was omitted from the request
func intValue(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func trimmedLen(fl validator.FieldLevel) int {
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String()))
}

func trimmedMatch(rx *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return rx.MatchString(strings.TrimSpace(fl.Field().String()))
	}
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func paramInt(fl validator.FieldLevel) int {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("validation: bad param %q for %s", fl.Param(), fl.GetTag()))
	}
	return n
}

func paramRange(fl validator.FieldLevel) (int, int) {
	lo, hi, ok := strings.Cut(fl.Param(), ":")
	if !ok {
		panic(fmt.Sprintf("validation: bad range %q for %s", fl.Param(), fl.GetTag()))
	}
	l, err1 := strconv.Atoi(lo)
	h, err2 := strconv.Atoi(hi)
	if err1 != nil || err2 != nil {
		panic(fmt.Sprintf("validation: bad range %q for %s", fl.Param(), fl.GetTag()))
	}
	return l, h
}
