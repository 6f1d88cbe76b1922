package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saxenaaman628/online-voting-system/internal/models"
)

var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestValidator() *Validator {
	return New(func() time.Time { return fixedNow })
}

func validVoter() models.Voter {
	return models.Voter{
		FullName:    "John Doe",
		PhoneNumber: "9876543210",
		Email:       "john.doe@example.com",
		Address:     "221B Baker Street, London",
		Birthdate:   "1990-04-12",
		Age:         "35",
		UserID:      "VOTER0001",
	}
}

func validCandidate() models.Candidate {
	return models.Candidate{
		FullName:  "Jane Roe",
		BirthDate: "1980-01-01",
		Age:       45,
		Email:     "jane@example.com",
		Mobile:    "9123456780",
		Address:   "12 Market Road, Springfield",
		Uid:       "CAND0000001",
		FormTitle: "City Council",
		FormID:    "FORM0000001",
	}
}

func TestAge(t *testing.T) {
	tests := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{"birthday passed", time.Date(2000, time.January, 10, 0, 0, 0, 0, time.UTC), 25},
		{"birthday today", time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC), 25},
		{"birthday tomorrow", time.Date(2000, time.June, 16, 0, 0, 0, 0, time.UTC), 24},
		{"later month", time.Date(2000, time.December, 1, 0, 0, 0, 0, time.UTC), 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Age(tt.birth, fixedNow))
		})
	}
}

func TestFieldFullName(t *testing.T) {
	v := newTestValidator()

	msg, err := v.Field(EntityVoter, "full_name", "John123")
	require.NoError(t, err)
	assert.Equal(t, "Full name can only contain letters and spaces", msg)

	msg, err = v.Field(EntityVoter, "full_name", "John Doe")
	require.NoError(t, err)
	assert.Empty(t, msg)

	msg, _ = v.Field(EntityVoter, "full_name", "   ")
	assert.Equal(t, "Full name is required", msg)

	msg, _ = v.Field(EntityVoter, "full_name", "J")
	assert.Equal(t, "Full name must be at least 2 characters long", msg)
}

func TestFieldUnknown(t *testing.T) {
	v := newTestValidator()
	_, err := v.Field(EntityVoter, "shoe_size", "12")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestVoterBirthdateBounds(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		birthdate string
		wantMsg   string
	}{
		{"2007-06-15", ""}, // exactly 18 today
		{"2007-06-16", "Voter must be between 18 and 120 years old"},
		{"1905-06-15", ""}, // exactly 120
		{"1904-06-14", "Voter must be between 18 and 120 years old"},
		{"not-a-date", "Please enter a valid birth date"},
		{"", "Birth date is required"},
	}
	for _, tt := range tests {
		t.Run(tt.birthdate, func(t *testing.T) {
			msg, err := v.Field(EntityVoter, "birthdate", tt.birthdate)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestCandidateBirthdateBounds(t *testing.T) {
	v := newTestValidator()

	msg, _ := v.Field(EntityCandidate, "birthDate", "1945-06-15")
	assert.Empty(t, msg, "80 years old is allowed")

	msg, _ = v.Field(EntityCandidate, "birthDate", "1944-06-14")
	assert.Equal(t, "Candidate must be between 18 and 80 years old", msg)
}

func TestPhoneStripsWhitespace(t *testing.T) {
	v := newTestValidator()

	msg, _ := v.Field(EntityVoter, "phone_number", "98765 43210")
	assert.Empty(t, msg)

	msg, _ = v.Field(EntityVoter, "phone_number", "98765")
	assert.Equal(t, "Please enter a valid 10-digit phone number", msg)

	msg, _ = v.Field(EntityCandidate, "mobile", "98765abcde")
	assert.Equal(t, "Please enter a valid 10-digit mobile number", msg)
}

func TestEmail(t *testing.T) {
	v := newTestValidator()
	for _, good := range []string{"a@b.com", "first.last@mail.example.org", "x-y@host.co"} {
		msg, _ := v.Field(EntityUser, "email", good)
		assert.Empty(t, msg, good)
	}
	for _, bad := range []string{"plainaddress", "a@b", "a@b.toolong", "@example.com"} {
		msg, _ := v.Field(EntityUser, "email", bad)
		assert.Equal(t, "Please enter a valid email address", msg, bad)
	}
}

func TestIdentifiers(t *testing.T) {
	v := newTestValidator()

	msg, _ := v.Field(EntityVoter, "user_id", "VOTER0001")
	assert.Empty(t, msg)
	msg, _ = v.Field(EntityVoter, "user_id", "VOTER01")
	assert.Equal(t, "User ID must be at least 8 characters long and contain only uppercase letters and numbers", msg)
	msg, _ = v.Field(EntityVoter, "user_id", "voter0001")
	assert.NotEmpty(t, msg)

	msg, _ = v.Field(EntityElection, "Uid", "FORM000001")
	assert.Empty(t, msg)
	msg, _ = v.Field(EntityElection, "Uid", "FORM00001")
	assert.Equal(t, "Form UID must be at least 10 characters long and contain only uppercase letters and numbers", msg)
}

func TestElection(t *testing.T) {
	v := newTestValidator()

	err := v.Election(models.ElectionForm{
		Title:         "City Council",
		NumCandidates: 2,
		ExpiryDate:    "2025-07-01",
		Uid:           "FORM0000001",
	})
	assert.NoError(t, err)

	err = v.Election(models.ElectionForm{
		Title:         "x!",
		NumCandidates: 21,
		ExpiryDate:    "2025-06-15T12:00:00Z",
		Uid:           "form",
	})
	require.Error(t, err)
	fe, ok := err.(FieldErrors)
	require.True(t, ok)
	assert.Equal(t, FieldErrors{
		"title":         "Voting title must be at least 3 characters long",
		"numCandidates": "Maximum 20 candidates allowed",
		"expiryDate":    "Expiry date must be in the future",
		"Uid":           "Form UID must be at least 10 characters long and contain only uppercase letters and numbers",
	}, fe)
}

func TestNumCandidatesField(t *testing.T) {
	v := newTestValidator()
	cases := map[string]string{
		"":    "Number of candidates is required",
		"1":   "At least 2 candidates are required",
		"abc": "At least 2 candidates are required",
		"2":   "",
		"20":  "",
		"21":  "Maximum 20 candidates allowed",
	}
	for in, want := range cases {
		msg, err := v.Field(EntityElection, "numCandidates", in)
		require.NoError(t, err)
		assert.Equal(t, want, msg, in)
	}
}

func TestVoterReportsAllFailures(t *testing.T) {
	v := newTestValidator()

	m := validVoter()
	require.NoError(t, v.Voter(m))

	m.FullName = "John123"
	m.PhoneNumber = "123"
	m.Image = "ftp://nope"
	err := v.Voter(m)
	require.Error(t, err)

	fe := err.(FieldErrors)
	assert.Len(t, fe, 3)
	assert.Equal(t, "Full name can only contain letters and spaces", fe["full_name"])
	assert.Equal(t, "Please enter a valid 10-digit phone number", fe["phone_number"])
	assert.Equal(t, "Image must be a valid image URL or base64 data", fe["image"])
}

func TestCandidate(t *testing.T) {
	v := newTestValidator()

	c := validCandidate()
	c.Image = "data:image/png;base64,iVBORw0KGgo="
	c.VoterIcon = "https://cdn.example.com/icon.png"
	require.NoError(t, v.Candidate(c))

	c.Age = 0
	c.FormID = ""
	fe := v.Candidate(c).(FieldErrors)
	assert.Equal(t, "Age is required", fe["age"])
	assert.Equal(t, "Form ID is required", fe["Form_Id"])
}

func TestUserAndLogin(t *testing.T) {
	v := newTestValidator()

	err := v.User(models.RegisterRequest{Username: "alice_1", Email: "a@b.com", Password: "secret1", UserType: "voter"})
	assert.NoError(t, err)

	fe := v.User(models.RegisterRequest{Username: "al", Email: "a@b.com", Password: "12345", UserType: "admin"}).(FieldErrors)
	assert.Equal(t, "Username must be at least 3 characters long", fe["username"])
	assert.Equal(t, "Password must be at least 6 characters long", fe["password"])
	assert.Equal(t, `User type must be either "voter" or "candidate"`, fe["userType"])

	fe = v.Login(models.LoginRequest{}).(FieldErrors)
	assert.Equal(t, "Email is required", fe["email"])
	assert.Equal(t, "Password is required", fe["password"])
	assert.Equal(t, "User type is required", fe["userType"])
}

func TestVotePayload(t *testing.T) {
	v := newTestValidator()

	err := v.Vote(models.VotePayload{CandidateUID: "CAND0000001", VoterID: "VOTER0001", FormID: "FORM0000001", FormTitle: "City Council"})
	assert.NoError(t, err)

	fe := v.Vote(models.VotePayload{}).(FieldErrors)
	assert.Equal(t, FieldErrors{
		"candidateUid": "Candidate UID is required",
		"voterId":      "Voter ID is required",
		"formId":       "Form ID is required",
		"formTitle":    "Form title is required",
	}, fe)
}

// A value accepted by the single-field check must be accepted by the
// whole-record check, since both run the same rules.
func TestFieldAgreesWithRecord(t *testing.T) {
	v := newTestValidator()
	m := validVoter()
	for field, value := range map[string]string{
		"full_name":    m.FullName,
		"phone_number": m.PhoneNumber,
		"email":        m.Email,
		"address":      m.Address,
		"birthdate":    m.Birthdate,
		"age":          string(m.Age),
		"user_id":      m.UserID,
	} {
		msg, err := v.Field(EntityVoter, field, value)
		require.NoError(t, err)
		assert.Empty(t, msg, field)
	}
	assert.NoError(t, v.Voter(m))
}

func TestFieldErrorsMessage(t *testing.T) {
	fe := FieldErrors{"b": "second", "a": "first"}
	assert.Equal(t, "validation failed: a: first; b: second", fe.Error())
}
