package redishandler

import (
	"reflect"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/saxenaaman628/online-voting-system/internal/models"
)

const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

// decode fills out from a HGETALL reply. Numbers arrive as strings, so
// weak typing is on.
func decode(data map[string]string, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			emptyTimeHook,
			mapstructure.StringToTimeHookFunc(timeLayout),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}

func emptyTimeHook(from, to reflect.Type, data any) (any, error) {
	if to == reflect.TypeOf(time.Time{}) && from.Kind() == reflect.String && data.(string) == "" {
		return time.Time{}, nil
	}
	return data, nil
}

func userFields(u *models.User) map[string]any {
	return map[string]any{
		"id":            u.ID,
		"username":      u.Username,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"user_type":     u.UserType,
		"created_at":    formatTime(u.CreatedAt),
	}
}

func voterFields(v *models.Voter) map[string]any {
	return map[string]any{
		"id":           v.ID,
		"full_name":    v.FullName,
		"phone_number": v.PhoneNumber,
		"email":        v.Email,
		"address":      v.Address,
		"birthdate":    v.Birthdate,
		"age":          string(v.Age),
		"user_id":      v.UserID,
		"image":        v.Image,
		"created_at":   formatTime(v.CreatedAt),
		"updated_at":   formatTime(v.UpdatedAt),
	}
}

func electionFields(e *models.ElectionForm) map[string]any {
	return map[string]any{
		"id":             e.ID,
		"title":          e.Title,
		"num_candidates": strconv.Itoa(int(e.NumCandidates)),
		"expiry_date":    e.ExpiryDate,
		"uid":            e.Uid,
		"created_at":     formatTime(e.CreatedAt),
		"updated_at":     formatTime(e.UpdatedAt),
	}
}

func candidateFields(c *models.Candidate) map[string]any {
	return map[string]any{
		"id":         c.ID,
		"full_name":  c.FullName,
		"birth_date": c.BirthDate,
		"age":        strconv.Itoa(int(c.Age)),
		"email":      c.Email,
		"mobile":     c.Mobile,
		"address":    c.Address,
		"image":      c.Image,
		"voter_icon": c.VoterIcon,
		"uid":        c.Uid,
		"form_title": c.FormTitle,
		"form_id":    c.FormID,
		"created_at": formatTime(c.CreatedAt),
		"updated_at": formatTime(c.UpdatedAt),
	}
}

func voteFields(v *models.Vote) map[string]any {
	return map[string]any{
		"id":            v.ID,
		"candidate_uid": v.CandidateUID,
		"voter_id":      v.VoterID,
		"form_id":       v.FormID,
		"form_title":    v.FormTitle,
		"vote":          strconv.Itoa(v.Vote),
		"created_at":    formatTime(v.CreatedAt),
	}
}

func imageFields(img *models.Image) map[string]any {
	return map[string]any{
		"id":           img.ID,
		"filename":     img.Filename,
		"content_type": img.ContentType,
		"size":         strconv.FormatInt(img.Size, 10),
		"data_url":     img.DataURL,
		"created_at":   formatTime(img.CreatedAt),
	}
}
