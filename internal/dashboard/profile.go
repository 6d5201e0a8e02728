package dashboard

import (
	"context"
	"log"
	"sync"

	"github.com/five82/emphub/internal/api"
	"github.com/five82/emphub/internal/form"
	"github.com/five82/emphub/internal/model"
)

const (
	profileSavedMessage   = "Profile saved successfully"
	profileLoadErrMessage = "Error loading profile"
)

// ProfileForm is the form session editing the profile.
type ProfileForm = form.Session[model.ProfileDraft, model.Profile]

// ProfileEditor holds the stored profile and the form that overwrites it.
type ProfileEditor struct {
	gw     api.Gateway
	userID int64
	form   *ProfileForm

	mu      sync.RWMutex
	profile model.Profile
	loaded  bool
	loadErr error
}

func newProfileEditor(gw api.Gateway, userID int64) *ProfileEditor {
	e := &ProfileEditor{gw: gw, userID: userID}
	e.form = form.NewSession(form.Config[model.ProfileDraft, model.Profile]{
		Name: "profile",
		// Editing starts from the stored profile, not an empty draft.
		NewDraft:       func() model.ProfileDraft { return model.NewProfileDraft(e.Profile()) },
		Submit:         e.save,
		SuccessMessage: profileSavedMessage,
		Message:        api.UserMessage,
	})
	return e
}

// Load fetches the profile. Failures are logged and leave the previous
// profile in place.
func (e *ProfileEditor) Load(ctx context.Context) {
	p, err := e.gw.FetchProfile(ctx, e.userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		log.Printf("profile load failed: %v", err)
		e.loadErr = err
		return
	}
	e.profile = p
	e.loaded = true
	e.loadErr = nil
}

func (e *ProfileEditor) save(ctx context.Context, d model.ProfileDraft) (model.Profile, error) {
	if err := e.gw.SaveProfile(ctx, e.userID, d.Profile); err != nil {
		return model.Profile{}, err
	}
	e.mu.Lock()
	e.profile = d.Profile
	e.loaded = true
	e.mu.Unlock()
	return d.Profile, nil
}

// Profile returns the last loaded or saved profile.
func (e *ProfileEditor) Profile() model.Profile {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.profile
}

// Loaded reports whether a profile has been fetched or saved.
func (e *ProfileEditor) Loaded() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.loaded
}

// LoadMessage returns the text to show when the last load failed.
func (e *ProfileEditor) LoadMessage() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.loadErr == nil {
		return ""
	}
	return profileLoadErrMessage
}

// Form returns the edit session.
func (e *ProfileEditor) Form() *ProfileForm { return e.form }
