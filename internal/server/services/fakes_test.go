package services

import (
	"context"
	"database/sql"

	"github.com/tuanis-rp/roleplay-api/internal/common"
	"github.com/tuanis-rp/roleplay-api/internal/dbx"
	"github.com/tuanis-rp/roleplay-api/internal/server/models"
	"github.com/tuanis-rp/roleplay-api/internal/server/repositories/authusers"
	"github.com/tuanis-rp/roleplay-api/internal/server/repositories/usuarios"
)

type fakeUsuariosRepo struct {
	getOut   *models.Usuario
	getErr   error
	getCalls int

	allOut   []*models.Usuario
	allErr   error
	allCalls int

	createOut *models.Usuario
	createErr error

	updateOut *models.Usuario
	updateErr error

	deleteErr error
}

func (f *fakeUsuariosRepo) Create(ctx context.Context, u *models.Usuario) (*models.Usuario, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsuariosRepo) GetByCedula(ctx context.Context, cedula string) (*models.Usuario, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsuariosRepo) GetAll(ctx context.Context) ([]*models.Usuario, error) {
	f.allCalls++
	if f.allErr != nil {
		return nil, f.allErr
	}
	return f.allOut, nil
}

func (f *fakeUsuariosRepo) Update(ctx context.Context, cedula string, u *models.Usuario) (*models.Usuario, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

func (f *fakeUsuariosRepo) Delete(ctx context.Context, cedula string) error {
	return f.deleteErr
}

// fakeAuthUsersRepo keeps records in memory, keyed by username and email.
type fakeAuthUsersRepo struct {
	byUsername map[string]*models.AuthUser
	byEmail    map[string]*models.AuthUser
	nextID     int64
}

func newFakeAuthUsersRepo() *fakeAuthUsersRepo {
	return &fakeAuthUsersRepo{
		byUsername: map[string]*models.AuthUser{},
		byEmail:    map[string]*models.AuthUser{},
	}
}

func (f *fakeAuthUsersRepo) Create(ctx context.Context, u *models.AuthUser) (*models.AuthUser, error) {
	if _, ok := f.byUsername[u.Username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	u.ID = f.nextID
	f.byUsername[u.Username] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeAuthUsersRepo) GetByUsername(ctx context.Context, username string) (*models.AuthUser, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeAuthUsersRepo) GetByEmail(ctx context.Context, email string) (*models.AuthUser, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeRepoManager struct {
	usuarios  *fakeUsuariosRepo
	authusers *fakeAuthUsersRepo

	lastAuthHandle dbx.DBTX
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (f *fakeRepoManager) Usuarios(dbx.DBTX) usuarios.Repository { return f.usuarios }

func (f *fakeRepoManager) AuthUsers(db dbx.DBTX) authusers.Repository {
	f.lastAuthHandle = db
	return f.authusers
}
