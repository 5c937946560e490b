package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/portfolio/internal/auth"
	"github.com/atinyakov/portfolio/internal/middleware"
	"github.com/atinyakov/portfolio/internal/models"
)

type fakeAuthService struct {
	LoginFunc    func(ctx context.Context, email, password string) (string, *models.User, error)
	RegisterFunc func(ctx context.Context, email, password string, role models.Role) (*models.User, error)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	return f.LoginFunc(ctx, email, password)
}

func (f *fakeAuthService) Register(ctx context.Context, email, password string, role models.Role) (*models.User, error) {
	return f.RegisterFunc(ctx, email, password, role)
}

type fakeSkillService struct {
	ListFunc       func(ctx context.Context) ([]models.Skill, error)
	FeaturedFunc   func(ctx context.Context) ([]models.Skill, error)
	ByCategoryFunc func(ctx context.Context, category models.SkillCategory) ([]models.Skill, error)
	GetFunc        func(ctx context.Context, id int64) (*models.Skill, error)
	CreateFunc     func(ctx context.Context, s models.Skill) (*models.Skill, error)
	UpdateFunc     func(ctx context.Context, id int64, p models.SkillPatch) (*models.Skill, error)
	DeleteFunc     func(ctx context.Context, id int64) error
}

func (f *fakeSkillService) List(ctx context.Context) ([]models.Skill, error) { return f.ListFunc(ctx) }
func (f *fakeSkillService) Featured(ctx context.Context) ([]models.Skill, error) {
	return f.FeaturedFunc(ctx)
}
func (f *fakeSkillService) ByCategory(ctx context.Context, c models.SkillCategory) ([]models.Skill, error) {
	return f.ByCategoryFunc(ctx, c)
}
func (f *fakeSkillService) Get(ctx context.Context, id int64) (*models.Skill, error) {
	return f.GetFunc(ctx, id)
}
func (f *fakeSkillService) Create(ctx context.Context, s models.Skill) (*models.Skill, error) {
	return f.CreateFunc(ctx, s)
}
func (f *fakeSkillService) Update(ctx context.Context, id int64, p models.SkillPatch) (*models.Skill, error) {
	return f.UpdateFunc(ctx, id, p)
}
func (f *fakeSkillService) Delete(ctx context.Context, id int64) error { return f.DeleteFunc(ctx, id) }

type fakeExperienceService struct {
	ListFunc   func(ctx context.Context) ([]models.Experience, error)
	GetFunc    func(ctx context.Context, id int64) (*models.Experience, error)
	CreateFunc func(ctx context.Context, e models.Experience) (*models.Experience, error)
	UpdateFunc func(ctx context.Context, id int64, p models.ExperiencePatch) (*models.Experience, error)
	DeleteFunc func(ctx context.Context, id int64) error
}

func (f *fakeExperienceService) List(ctx context.Context) ([]models.Experience, error) {
	return f.ListFunc(ctx)
}
func (f *fakeExperienceService) Get(ctx context.Context, id int64) (*models.Experience, error) {
	return f.GetFunc(ctx, id)
}
func (f *fakeExperienceService) Create(ctx context.Context, e models.Experience) (*models.Experience, error) {
	return f.CreateFunc(ctx, e)
}
func (f *fakeExperienceService) Update(ctx context.Context, id int64, p models.ExperiencePatch) (*models.Experience, error) {
	return f.UpdateFunc(ctx, id, p)
}
func (f *fakeExperienceService) Delete(ctx context.Context, id int64) error {
	return f.DeleteFunc(ctx, id)
}

type fakeProjectService struct {
	ListFunc     func(ctx context.Context) ([]models.Project, error)
	FeaturedFunc func(ctx context.Context) ([]models.Project, error)
	GetFunc      func(ctx context.Context, id int64) (*models.Project, error)
	CreateFunc   func(ctx context.Context, p models.Project) (*models.Project, error)
	UpdateFunc   func(ctx context.Context, id int64, p models.ProjectPatch) (*models.Project, error)
	DeleteFunc   func(ctx context.Context, id int64) error
}

func (f *fakeProjectService) List(ctx context.Context) ([]models.Project, error) {
	return f.ListFunc(ctx)
}
func (f *fakeProjectService) Featured(ctx context.Context) ([]models.Project, error) {
	return f.FeaturedFunc(ctx)
}
func (f *fakeProjectService) Get(ctx context.Context, id int64) (*models.Project, error) {
	return f.GetFunc(ctx, id)
}
func (f *fakeProjectService) Create(ctx context.Context, p models.Project) (*models.Project, error) {
	return f.CreateFunc(ctx, p)
}
func (f *fakeProjectService) Update(ctx context.Context, id int64, p models.ProjectPatch) (*models.Project, error) {
	return f.UpdateFunc(ctx, id, p)
}
func (f *fakeProjectService) Delete(ctx context.Context, id int64) error {
	return f.DeleteFunc(ctx, id)
}

type fakeContactService struct {
	SubmitFunc    func(ctx context.Context, name, email, subject, message string) (*models.Contact, error)
	ListFunc      func(ctx context.Context) ([]models.Contact, error)
	GetFunc       func(ctx context.Context, id int64) (*models.Contact, error)
	SetStatusFunc func(ctx context.Context, id int64, status models.MessageStatus) (*models.Contact, error)
	MarkReadFunc  func(ctx context.Context, id int64) (*models.Contact, error)
	DeleteFunc    func(ctx context.Context, id int64) error
	StatsFunc     func(ctx context.Context) (*models.ContactStats, error)
}

func (f *fakeContactService) Submit(ctx context.Context, name, email, subject, message string) (*models.Contact, error) {
	return f.SubmitFunc(ctx, name, email, subject, message)
}
func (f *fakeContactService) List(ctx context.Context) ([]models.Contact, error) {
	return f.ListFunc(ctx)
}
func (f *fakeContactService) Get(ctx context.Context, id int64) (*models.Contact, error) {
	return f.GetFunc(ctx, id)
}
func (f *fakeContactService) SetStatus(ctx context.Context, id int64, s models.MessageStatus) (*models.Contact, error) {
	return f.SetStatusFunc(ctx, id, s)
}
func (f *fakeContactService) MarkRead(ctx context.Context, id int64) (*models.Contact, error) {
	return f.MarkReadFunc(ctx, id)
}
func (f *fakeContactService) Delete(ctx context.Context, id int64) error {
	return f.DeleteFunc(ctx, id)
}
func (f *fakeContactService) Stats(ctx context.Context) (*models.ContactStats, error) {
	return f.StatsFunc(ctx)
}

type fakeProfileService struct {
	GetFunc  func(ctx context.Context) (*models.PersonalInfo, error)
	SaveFunc func(ctx context.Context, p models.PersonalInfo) (*models.PersonalInfo, error)
}

func (f *fakeProfileService) Get(ctx context.Context) (*models.PersonalInfo, error) {
	return f.GetFunc(ctx)
}
func (f *fakeProfileService) Save(ctx context.Context, p models.PersonalInfo) (*models.PersonalInfo, error) {
	return f.SaveFunc(ctx, p)
}

type fakePinger struct {
	err error
}

func (f fakePinger) PingContext(context.Context) error { return f.err }

// testAPI wires fake services into the real router.
type testAPI struct {
	auth       *fakeAuthService
	skills     *fakeSkillService
	experience *fakeExperienceService
	projects   *fakeProjectService
	contact    *fakeContactService
	profile    *fakeProfileService
	db         *fakePinger
	issuer     *auth.Issuer
	limiter    *middleware.RateLimiter
	proxies    []netip.Prefix
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	issuer, err := auth.NewIssuer("handler-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	return &testAPI{
		auth:       &fakeAuthService{},
		skills:     &fakeSkillService{},
		experience: &fakeExperienceService{},
		projects:   &fakeProjectService{},
		contact:    &fakeContactService{},
		profile:    &fakeProfileService{},
		db:         &fakePinger{},
		issuer:     issuer,
		limiter:    middleware.NewRateLimiter(3, 15*time.Minute, "Too many contact form submissions. Please try again later."),
	}
}

func (a *testAPI) router() http.Handler {
	log := zap.NewNop()
	return NewRouter(Handlers{
		Auth:       &AuthHandler{AuthService: a.auth, Log: log},
		Skills:     &SkillHandler{Skills: a.skills, Log: log},
		Experience: &ExperienceHandler{Experience: a.experience, Log: log},
		Projects:   &ProjectHandler{Projects: a.projects, Log: log},
		Contact:    &ContactHandler{Contact: a.contact, Log: log},
		Profile:    &ProfileHandler{Profile: a.profile, Log: log},
		Health: &HealthHandler{DB: a.db, Environment: "test", Log: log,
			now: func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }},
	}, RouterOptions{
		Tokens:         a.issuer,
		ContactLimiter: a.limiter,
		CORSOrigins:    []string{"*"},
		TrustedProxies: a.proxies,
		Log:            log,
	})
}

func (a *testAPI) token(t *testing.T, role models.Role) string {
	t.Helper()
	tok, err := a.issuer.Issue(1, "admin@portfolio.com", role)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return tok
}

// do sends a request through the router. body may be nil, a string or any JSON-encodable value.
func (a *testAPI) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if buf.Len() > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
