package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/repository"
)

// fakeStore is an in-memory stand-in for the relational store shared by all fake repositories.
// mutations counts every write so tests can assert nothing was written.
type fakeStore struct {
	mu        sync.Mutex
	nextID    int64
	mutations int

	members         map[int64]*domain.Member
	jobs            map[int64]*domain.Job
	licenses        map[int64]*domain.License
	portfolios      map[int64]*domain.Portfolio
	portfolioSkills map[int64]*domain.PortfolioSkill
	portfolioAwards map[int64]*domain.PortfolioAward
	likes           map[int64]*domain.Like
	projects        map[int64]*domain.Project
	projectSkills   map[int64]*domain.ProjectSkill
	projectImgs     map[int64]*domain.ProjectImg
	projectAwards   map[int64]*domain.ProjectAward
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		members:         map[int64]*domain.Member{},
		jobs:            map[int64]*domain.Job{},
		licenses:        map[int64]*domain.License{},
		portfolios:      map[int64]*domain.Portfolio{},
		portfolioSkills: map[int64]*domain.PortfolioSkill{},
		portfolioAwards: map[int64]*domain.PortfolioAward{},
		likes:           map[int64]*domain.Like{},
		projects:        map[int64]*domain.Project{},
		projectSkills:   map[int64]*domain.ProjectSkill{},
		projectImgs:     map[int64]*domain.ProjectImg{},
		projectAwards:   map[int64]*domain.ProjectAward{},
	}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutations
}

func (s *fakeStore) insert(ts *domain.Timestamps) int64 {
	s.mutations++
	ts.Touch(time.Now())
	return s.id()
}

func copyOf[T any](v *T) *T {
	c := *v
	return &c
}

func sortedByID[T any](m map[int64]*T, keep func(*T) bool) []*T {
	ids := make([]int64, 0, len(m))
	for id, v := range m {
		if keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyOf(m[id]))
	}
	return out
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// --- members ---

type fakeMemberRepo struct{ s *fakeStore }

func (r fakeMemberRepo) Create(_ context.Context, m *domain.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.members {
		if existing.LoginID == m.LoginID {
			return domain.ErrLoginIDAlreadyExists
		}
	}
	m.ID = r.s.insert(&m.Timestamps)
	r.s.members[m.ID] = copyOf(m)
	return nil
}

func (r fakeMemberRepo) GetByID(_ context.Context, id int64) (*domain.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.members[id]; ok {
		return copyOf(m), nil
	}
	return nil, nil
}

func (r fakeMemberRepo) GetByLoginID(_ context.Context, loginID string) (*domain.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.members {
		if m.LoginID == loginID {
			return copyOf(m), nil
		}
	}
	return nil, nil
}

func (r fakeMemberRepo) ExistsByLoginID(ctx context.Context, loginID string) (bool, error) {
	m, err := r.GetByLoginID(ctx, loginID)
	return m != nil, err
}

func (r fakeMemberRepo) Update(_ context.Context, m *domain.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.members[m.ID]; !ok {
		return domain.ErrMemberNotFound
	}
	r.s.mutations++
	m.Touch(time.Now())
	r.s.members[m.ID] = copyOf(m)
	return nil
}

// --- jobs ---

type fakeJobRepo struct{ s *fakeStore }

func (r fakeJobRepo) Create(_ context.Context, j *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.jobs {
		if existing.Name == j.Name {
			return domain.ErrJobAlreadyExists
		}
	}
	j.ID = r.s.insert(&j.Timestamps)
	r.s.jobs[j.ID] = copyOf(j)
	return nil
}

func (r fakeJobRepo) GetByID(_ context.Context, id int64) (*domain.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if j, ok := r.s.jobs[id]; ok {
		return copyOf(j), nil
	}
	return nil, nil
}

func (r fakeJobRepo) GetByName(_ context.Context, name string) (*domain.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, j := range r.s.jobs {
		if j.Name == name {
			return copyOf(j), nil
		}
	}
	return nil, nil
}

func (r fakeJobRepo) List(_ context.Context) ([]*domain.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedByID(r.s.jobs, func(*domain.Job) bool { return true }), nil
}

func (r fakeJobRepo) Update(_ context.Context, j *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[j.ID]; !ok {
		return domain.ErrJobNotFound
	}
	r.s.mutations++
	r.s.jobs[j.ID] = copyOf(j)
	return nil
}

func (r fakeJobRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	r.s.mutations++
	delete(r.s.jobs, id)
	return nil
}

// --- licenses ---

type fakeLicenseRepo struct{ s *fakeStore }

func (r fakeLicenseRepo) Create(_ context.Context, l *domain.License) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.licenses {
		if existing.OwnerID == l.OwnerID && existing.Name == l.Name {
			return domain.ErrLicenseAlreadyEnrolled
		}
	}
	l.ID = r.s.insert(&l.Timestamps)
	r.s.licenses[l.ID] = copyOf(l)
	return nil
}

func (r fakeLicenseRepo) GetByOwnerAndName(_ context.Context, ownerID int64, name string) (*domain.License, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.licenses {
		if l.OwnerID == ownerID && l.Name == name {
			return copyOf(l), nil
		}
	}
	return nil, nil
}

func (r fakeLicenseRepo) ListByOwner(_ context.Context, ownerID int64) ([]*domain.License, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedByID(r.s.licenses, func(l *domain.License) bool { return l.OwnerID == ownerID }), nil
}

func (r fakeLicenseRepo) Update(_ context.Context, l *domain.License) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.licenses[l.ID]; !ok {
		return domain.ErrLicenseNotFound
	}
	r.s.mutations++
	r.s.licenses[l.ID] = copyOf(l)
	return nil
}

// --- portfolios ---

type fakePortfolioRepo struct{ s *fakeStore }

func (r fakePortfolioRepo) Create(_ context.Context, p *domain.Portfolio) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.insert(&p.Timestamps)
	r.s.portfolios[p.ID] = copyOf(p)
	return nil
}

func (r fakePortfolioRepo) GetByID(_ context.Context, id int64) (*domain.Portfolio, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.portfolios[id]; ok {
		return copyOf(p), nil
	}
	return nil, nil
}

func (r fakePortfolioRepo) ListByWriter(_ context.Context, writerID int64) ([]*domain.Portfolio, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedByID(r.s.portfolios, func(p *domain.Portfolio) bool { return p.WriterID == writerID }), nil
}

func (r fakePortfolioRepo) card(p *domain.Portfolio) *domain.PortfolioCard {
	writer := r.s.members[p.WriterID]
	var count int64
	for _, l := range r.s.likes {
		if l.PortfolioID == p.ID {
			count++
		}
	}
	return &domain.PortfolioCard{
		PortfolioID:   p.ID,
		Title:         p.Title,
		Description:   p.Description,
		BackgroundImg: p.BackgroundImg,
		NickName:      writer.NickName,
		ProfileImg:    writer.ProfileImg,
		LikeCount:     count,
		CreatedAt:     p.CreatedAt,
	}
}

func pageOf[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (r fakePortfolioRepo) ListCards(_ context.Context, f *domain.PortfolioFilter) ([]*domain.PortfolioCard, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	matched := sortedByID(r.s.portfolios, func(p *domain.Portfolio) bool {
		return p.JobID == f.JobID && strings.Contains(p.Title, f.Keyword)
	})
	cards := make([]*domain.PortfolioCard, 0, len(matched))
	for i := len(matched) - 1; i >= 0; i-- {
		cards = append(cards, r.card(matched[i]))
	}
	return pageOf(cards, f.Limit, f.Offset), len(cards), nil
}

func (r fakePortfolioRepo) ListLikedCards(_ context.Context, memberID int64, limit, offset int) ([]*domain.PortfolioCard, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	liked := sortedByID(r.s.likes, func(l *domain.Like) bool { return l.MemberID == memberID })
	cards := make([]*domain.PortfolioCard, 0, len(liked))
	for i := len(liked) - 1; i >= 0; i-- {
		cards = append(cards, r.card(r.s.portfolios[liked[i].PortfolioID]))
	}
	return pageOf(cards, limit, offset), len(cards), nil
}

func (r fakePortfolioRepo) Update(_ context.Context, p *domain.Portfolio) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.portfolios[p.ID]; !ok {
		return domain.ErrPortfolioNotFound
	}
	r.s.mutations++
	r.s.portfolios[p.ID] = copyOf(p)
	return nil
}

// Delete cascades like the ON DELETE CASCADE foreign keys
func (r fakePortfolioRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.portfolios[id]; !ok {
		return domain.ErrPortfolioNotFound
	}
	r.s.mutations++
	delete(r.s.portfolios, id)
	for k, v := range r.s.portfolioSkills {
		if v.PortfolioID == id {
			delete(r.s.portfolioSkills, k)
		}
	}
	for k, v := range r.s.portfolioAwards {
		if v.PortfolioID == id {
			delete(r.s.portfolioAwards, k)
		}
	}
	for k, v := range r.s.likes {
		if v.PortfolioID == id {
			delete(r.s.likes, k)
		}
	}
	for k, v := range r.s.projects {
		if v.PortfolioID == id {
			delete(r.s.projects, k)
		}
	}
	return nil
}

// --- portfolio skills ---

type fakePortfolioSkillRepo struct{ s *fakeStore }

func (r fakePortfolioSkillRepo) ListByPortfolio(_ context.Context, portfolioID int64) ([]*domain.PortfolioSkill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedByID(r.s.portfolioSkills, func(sk *domain.PortfolioSkill) bool { return sk.PortfolioID == portfolioID }), nil
}

func (r fakePortfolioSkillRepo) CreateBatch(_ context.Context, skills []*domain.PortfolioSkill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sk := range skills {
		sk.ID = r.s.insert(&sk.Timestamps)
		r.s.portfolioSkills[sk.ID] = copyOf(sk)
	}
	return nil
}

func (r fakePortfolioSkillRepo) DeleteByIDs(_ context.Context, ids []int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		r.s.mutations++
		delete(r.s.portfolioSkills, id)
	}
	return nil
}

// --- portfolio awards ---

type fakePortfolioAwardRepo struct{ s *fakeStore }

func (r fakePortfolioAwardRepo) Create(_ context.Context, a *domain.PortfolioAward) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.ID = r.s.insert(&a.Timestamps)
	r.s.portfolioAwards[a.ID] = copyOf(a)
	return nil
}

func (r fakePortfolioAwardRepo) GetByID(_ context.Context, id int64) (*domain.PortfolioAward, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.portfolioAwards[id]; ok {
		return copyOf(a), nil
	}
	return nil, nil
}

func (r fakePortfolioAwardRepo) ListByPortfolio(_ context.Context, portfolioID int64) ([]*domain.PortfolioAward, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedByID(r.s.portfolioAwards, func(a *domain.PortfolioAward) bool { return a.PortfolioID == portfolioID }), nil
}

func (r fakePortfolioAwardRepo) Update(_ context.Context, a *domain.PortfolioAward) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.portfolioAwards[a.ID]; !ok {
		return domain.ErrPortfolioAwardNotFound
	}
	r.s.mutations++
	r.s.portfolioAwards[a.ID] = copyOf(a)
	return nil
}

func (r fakePortfolioAwardRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.portfolioAwards[id]; !ok {
		return domain.ErrPortfolioAwardNotFound
	}
	r.s.mutations++
	delete(r.s.portfolioAwards, id)
	return nil
}

// --- likes ---

type fakeLikeRepo struct{ s *fakeStore }

func (r fakeLikeRepo) find(memberID, portfolioID int64) (int64, bool) {
	for id, l := range r.s.likes {
		if l.MemberID == memberID && l.PortfolioID == portfolioID {
			return id, true
		}
	}
	return 0, false
}

func (r fakeLikeRepo) Exists(_ context.Context, memberID, portfolioID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.find(memberID, portfolioID)
	return ok, nil
}

func (r fakeLikeRepo) Create(_ context.Context, l *domain.Like) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.find(l.MemberID, l.PortfolioID); ok {
		return false, nil
	}
	r.s.mutations++
	l.ID = r.s.id()
	l.CreatedAt = time.Now()
	r.s.likes[l.ID] = copyOf(l)
	return true, nil
}

func (r fakeLikeRepo) Delete(_ context.Context, memberID, portfolioID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id, ok := r.find(memberID, portfolioID)
	if !ok {
		return false, nil
	}
	r.s.mutations++
	delete(r.s.likes, id)
	return true, nil
}

func (r fakeLikeRepo) CountByPortfolio(_ context.Context, portfolioID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, l := range r.s.likes {
		if l.PortfolioID == portfolioID {
			n++
		}
	}
	return n, nil
}

// --- projects ---

type fakeProjectRepo struct{ s *fakeStore }

func (r fakeProjectRepo) Create(_ context.Context, p *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.insert(&p.Timestamps)
	r.s.projects[p.ID] = copyOf(p)
	return nil
}

func (r fakeProjectRepo) GetByID(_ context.Context, id int64) (*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.projects[id]; ok {
		return copyOf(p), nil
	}
	return nil, nil
}

func (r fakeProjectRepo) ListByPortfolio(_ context.Context, portfolioID int64) ([]*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedByID(r.s.projects, func(p *domain.Project) bool { return p.PortfolioID == portfolioID }), nil
}

func (r fakeProjectRepo) Update(_ context.Context, p *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[p.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	r.s.mutations++
	r.s.projects[p.ID] = copyOf(p)
	return nil
}

func (r fakeProjectRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	r.s.mutations++
	delete(r.s.projects, id)
	return nil
}

type fakeProjectSkillRepo struct{ s *fakeStore }

func (r fakeProjectSkillRepo) ListByProjects(_ context.Context, ids []int64) ([]*domain.ProjectSkill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedByID(r.s.projectSkills, func(sk *domain.ProjectSkill) bool { return containsID(ids, sk.ProjectID) }), nil
}

func (r fakeProjectSkillRepo) CreateBatch(_ context.Context, skills []*domain.ProjectSkill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sk := range skills {
		sk.ID = r.s.insert(&sk.Timestamps)
		r.s.projectSkills[sk.ID] = copyOf(sk)
	}
	return nil
}

func (r fakeProjectSkillRepo) DeleteByIDs(_ context.Context, ids []int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		r.s.mutations++
		delete(r.s.projectSkills, id)
	}
	return nil
}

type fakeProjectImgRepo struct{ s *fakeStore }

func (r fakeProjectImgRepo) ListByProjects(_ context.Context, ids []int64) ([]*domain.ProjectImg, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedByID(r.s.projectImgs, func(img *domain.ProjectImg) bool { return containsID(ids, img.ProjectID) }), nil
}

func (r fakeProjectImgRepo) CreateBatch(_ context.Context, imgs []*domain.ProjectImg) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, img := range imgs {
		img.ID = r.s.insert(&img.Timestamps)
		r.s.projectImgs[img.ID] = copyOf(img)
	}
	return nil
}

func (r fakeProjectImgRepo) DeleteByIDs(_ context.Context, ids []int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		r.s.mutations++
		delete(r.s.projectImgs, id)
	}
	return nil
}

type fakeProjectAwardRepo struct{ s *fakeStore }

func (r fakeProjectAwardRepo) ListByProjects(_ context.Context, ids []int64) ([]*domain.ProjectAward, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedByID(r.s.projectAwards, func(a *domain.ProjectAward) bool { return containsID(ids, a.ProjectID) }), nil
}

func (r fakeProjectAwardRepo) Upsert(_ context.Context, a *domain.ProjectAward) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.mutations++
	for id, existing := range r.s.projectAwards {
		if existing.ProjectID == a.ProjectID {
			a.ID = id
			a.CreatedAt = existing.CreatedAt
			a.UpdatedAt = time.Now()
			r.s.projectAwards[id] = copyOf(a)
			return nil
		}
	}
	a.ID = r.s.id()
	a.Touch(time.Now())
	r.s.projectAwards[a.ID] = copyOf(a)
	return nil
}

// --- infrastructure ---

// fakeTx runs fn directly; the fake store has no rollback
type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventType, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

var (
	_ repository.MemberRepository         = fakeMemberRepo{}
	_ repository.JobRepository            = fakeJobRepo{}
	_ repository.LicenseRepository        = fakeLicenseRepo{}
	_ repository.PortfolioRepository      = fakePortfolioRepo{}
	_ repository.PortfolioSkillRepository = fakePortfolioSkillRepo{}
	_ repository.PortfolioAwardRepository = fakePortfolioAwardRepo{}
	_ repository.LikeRepository           = fakeLikeRepo{}
	_ repository.ProjectRepository        = fakeProjectRepo{}
	_ repository.ProjectSkillRepository   = fakeProjectSkillRepo{}
	_ repository.ProjectImgRepository     = fakeProjectImgRepo{}
	_ repository.ProjectAwardRepository   = fakeProjectAwardRepo{}
)
