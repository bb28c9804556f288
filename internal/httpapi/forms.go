package httpapi

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"fyyur/internal/format"
	"fyyur/internal/store"
)

var stateChoices = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "HI", "ID", "IL", "IN",
	"IA", "KS", "KY", "LA", "ME", "MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH",
	"OK", "OR", "MD", "MA", "MI", "MN", "MS", "MO", "PA", "RI", "SC", "SD", "TN", "TX", "UT",
	"VT", "VA", "WA", "WV", "WI", "WY",
}

var genreChoices = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic", "Folk", "Funk", "Hip-Hop",
	"Heavy Metal", "Instrumental", "Jazz", "Musical Theatre", "Pop", "Punk", "R&B", "Reggae",
	"Rock n Roll", "Soul", "Other",
}

var phonePattern = regexp.MustCompile(`^[0-9]{3}-[0-9]{3}-[0-9]{4}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(v.RegisterValidation("usstate", func(fl validator.FieldLevel) bool {
		return slices.Contains(stateChoices, fl.Field().String())
	}))
	must(v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return slices.Contains(genreChoices, fl.Field().String())
	}))
	must(v.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
		_, err := format.Parse(fl.Field().String())
		return err == nil
	}))
	return v
}

// fieldErrors maps form field names to a message for the template.
type fieldErrors map[string]string

// check validates form and returns nil when it is acceptable.
func check(form any) (fieldErrors, error) {
	err := validate.Struct(form)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	out := make(fieldErrors, len(verrs))
	for _, fe := range verrs {
		// Slice elements report as "genres[0]".
		name, _, _ := strings.Cut(fe.Field(), "[")
		if _, seen := out[name]; !seen {
			out[name] = describe(fe)
		}
	}
	return out, nil
}

func describe(fe validator.FieldError) string {
	label := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "url":
		return label + " must be a valid URL"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "phone":
		return label + " must look like 555-555-5555"
	case "usstate":
		return label + " must be a US state"
	case "genre":
		return fmt.Sprintf("%q is not a known genre", fe.Value())
	case "timestamp":
		return label + " must look like 2006-01-02 15:04"
	case "numeric", "gt":
		return label + " must be a positive number"
	default:
		return label + " is invalid"
	}
}

// Error summarises the field errors for logs and failure outcomes.
func (fe fieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fe[k])
	}
	return fmt.Sprintf("%v: %s", store.ErrInvalid, strings.Join(parts, "; "))
}

func (fieldErrors) Unwrap() error { return store.ErrInvalid }

type venueForm struct {
	Name               string `form:"name" validate:"required"`
	City               string `form:"city" validate:"required,max=120"`
	State              string `form:"state" validate:"required,usstate"`
	Address            string `form:"address" validate:"required,max=120"`
	Phone              string `form:"phone" validate:"omitempty,phone"`
	ImageLink          string `form:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string `form:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string `form:"website_link" validate:"omitempty,url,max=150"`
	SeekingTalent      bool   `form:"seeking_talent"`
	SeekingDescription string `form:"seeking_description" validate:"max=500"`
}

func parseVenueForm(values url.Values) venueForm {
	return venueForm{
		Name:               field(values, "name"),
		City:               field(values, "city"),
		State:              field(values, "state"),
		Address:            field(values, "address"),
		Phone:              field(values, "phone"),
		ImageLink:          field(values, "image_link"),
		FacebookLink:       field(values, "facebook_link"),
		WebsiteLink:        field(values, "website_link"),
		SeekingTalent:      checkbox(values, "seeking_talent"),
		SeekingDescription: field(values, "seeking_description"),
	}
}

func venueFormFrom(v store.Venue) venueForm {
	return venueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.WebsiteLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

func (f venueForm) venue() store.Venue {
	return store.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
	}
}

// patch includes only the fields present in the submission. Checkboxes are
// always included since browsers omit unchecked boxes.
func (f venueForm) patch(values url.Values) store.VenuePatch {
	return store.VenuePatch{
		Name:               present(values, "name", f.Name),
		City:               present(values, "city", f.City),
		State:              present(values, "state", f.State),
		Address:            present(values, "address", f.Address),
		Phone:              present(values, "phone", f.Phone),
		ImageLink:          present(values, "image_link", f.ImageLink),
		FacebookLink:       present(values, "facebook_link", f.FacebookLink),
		WebsiteLink:        present(values, "website_link", f.WebsiteLink),
		SeekingTalent:      &f.SeekingTalent,
		SeekingDescription: present(values, "seeking_description", f.SeekingDescription),
	}
}

type artistForm struct {
	Name               string   `form:"name" validate:"required"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,usstate"`
	Phone              string   `form:"phone" validate:"omitempty,phone"`
	Genres             []string `form:"genres" validate:"dive,genre"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=150"`
	SeekingVenue       bool     `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" validate:"max=700"`
}

func parseArtistForm(values url.Values) artistForm {
	return artistForm{
		Name:               field(values, "name"),
		City:               field(values, "city"),
		State:              field(values, "state"),
		Phone:              field(values, "phone"),
		Genres:             multi(values, "genres"),
		ImageLink:          field(values, "image_link"),
		FacebookLink:       field(values, "facebook_link"),
		WebsiteLink:        field(values, "website_link"),
		SeekingVenue:       checkbox(values, "seeking_venue"),
		SeekingDescription: field(values, "seeking_description"),
	}
}

func artistFormFrom(a store.Artist) artistForm {
	return artistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             a.Genres,
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.WebsiteLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

// artist stores an empty genre list rather than nil, matching what reads return.
func (f artistForm) artist() store.Artist {
	genres := f.Genres
	if genres == nil {
		genres = []string{}
	}
	return store.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Genres:             genres,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
	}
}

func (f artistForm) patch(values url.Values) store.ArtistPatch {
	p := store.ArtistPatch{
		Name:               present(values, "name", f.Name),
		City:               present(values, "city", f.City),
		State:              present(values, "state", f.State),
		Phone:              present(values, "phone", f.Phone),
		ImageLink:          present(values, "image_link", f.ImageLink),
		FacebookLink:       present(values, "facebook_link", f.FacebookLink),
		WebsiteLink:        present(values, "website_link", f.WebsiteLink),
		SeekingVenue:       &f.SeekingVenue,
		SeekingDescription: present(values, "seeking_description", f.SeekingDescription),
	}
	// A multi-select with nothing chosen is omitted by browsers, so genres
	// are always replaced.
	genres := f.Genres
	p.Genres = &genres
	return p
}

type showForm struct {
	ArtistID  string `form:"artist_id" validate:"required,numeric"`
	VenueID   string `form:"venue_id" validate:"required,numeric"`
	StartTime string `form:"start_time" validate:"required,timestamp"`
}

func parseShowForm(values url.Values) showForm {
	return showForm{
		ArtistID:  field(values, "artist_id"),
		VenueID:   field(values, "venue_id"),
		StartTime: field(values, "start_time"),
	}
}

// show converts a validated form. Conversion errors report the offending field.
func (f showForm) show() (store.Show, fieldErrors) {
	errs := fieldErrors{}
	artistID, err := strconv.ParseInt(f.ArtistID, 10, 64)
	if err != nil || artistID <= 0 {
		errs["artist_id"] = "artist id must be a positive number"
	}
	venueID, err := strconv.ParseInt(f.VenueID, 10, 64)
	if err != nil || venueID <= 0 {
		errs["venue_id"] = "venue id must be a positive number"
	}
	start, err := format.Parse(f.StartTime)
	if err != nil {
		errs["start_time"] = "start time must look like 2006-01-02 15:04"
	}
	if len(errs) > 0 {
		return store.Show{}, errs
	}
	return store.Show{ArtistID: artistID, VenueID: venueID, StartTime: start.UTC()}, nil
}

// newShowForm prefills the start time in UTC, the zone format.Parse assumes.
func newShowForm(now time.Time) showForm {
	return showForm{StartTime: now.UTC().Format("2006-01-02 15:04")}
}

func field(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

func multi(values url.Values, key string) []string {
	out := []string{}
	for _, v := range values[key] {
		if v = strings.TrimSpace(v); v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func checkbox(values url.Values, key string) bool {
	switch strings.ToLower(values.Get(key)) {
	case "y", "yes", "on", "true", "1":
		return true
	}
	return false
}

func present(values url.Values, key, value string) *string {
	if _, ok := values[key]; !ok {
		return nil
	}
	return &value
}
