package usuarios

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tuanis-rp/roleplay-api/internal/common"
	"github.com/tuanis-rp/roleplay-api/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func sampleUsuario() *models.Usuario {
	return &models.Usuario{
		Nombre:          "Carlos",
		Apellido:        "Mora",
		Nacionalidad:    "CR",
		Estatura:        "1.78",
		FechaNacimiento: models.NewDate(1990, time.March, 14),
		Edad:            35,
		Cedula:          "1-1111-1111",
	}
}

const insertQuery = `(?s)^INSERT\s+INTO\s+usuarios\s*\(nombre,\s*apellido,\s*nacionalidad,\s*estatura,\s*fecha_nacimiento,\s*edad,\s*cedula\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7\)\s*RETURNING\s+id\s*$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	u := sampleUsuario()

	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(42))
	mock.ExpectQuery(insertQuery).
		WithArgs(u.Nombre, u.Apellido, u.Nacionalidad, u.Estatura, u.FechaNacimiento, u.Edad, u.Cedula).
		WillReturnRows(rows)

	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 42 || got.Cedula != "1-1111-1111" {
		t.Fatalf("unexpected usuario: %+v", got)
	}
}

func TestCreate_DuplicateCedula(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	u := sampleUsuario()

	mock.ExpectQuery(insertQuery).
		WithArgs(u.Nombre, u.Apellido, u.Nacionalidad, u.Estatura, u.FechaNacimiento, u.Edad, u.Cedula).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), u)
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected common.ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	u := sampleUsuario()

	mock.ExpectQuery(insertQuery).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), u)
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByCedula_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*nombre,\s*apellido,\s*nacionalidad,\s*estatura,\s*fecha_nacimiento,\s*edad,\s*cedula\s+FROM\s+usuarios\s+WHERE\s+cedula\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"id", "nombre", "apellido", "nacionalidad", "estatura", "fecha_nacimiento", "edad", "cedula"}).
		AddRow(int64(1), "Carlos", "Mora", "CR", "1.78", time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC), 35, "1-1111-1111")
	mock.ExpectQuery(q).
		WithArgs("1-1111-1111").
		WillReturnRows(rows)

	got, err := repo.GetByCedula(context.Background(), "1-1111-1111")
	if err != nil {
		t.Fatalf("GetByCedula error: %v", err)
	}
	if got.ID != 1 || got.Nombre != "Carlos" || got.FechaNacimiento.String() != "1990-03-14" {
		t.Fatalf("unexpected usuario: %+v", got)
	}
}

func TestGetByCedula_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).
		WithArgs("0-0000-0000").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByCedula(context.Background(), "0-0000-0000")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestGetAll_ReturnsAllRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,.*FROM\s+usuarios\s+ORDER\s+BY\s+id\s*$`

	rows := sqlmock.NewRows([]string{"id", "nombre", "apellido", "nacionalidad", "estatura", "fecha_nacimiento", "edad", "cedula"}).
		AddRow(int64(1), "Carlos", "Mora", "CR", "1.78", time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC), 35, "1-1111-1111").
		AddRow(int64(2), "Ana", "Rojas", "CR", "1.65", time.Date(1995, time.July, 2, 0, 0, 0, 0, time.UTC), 30, "2-2222-2222")
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll error: %v", err)
	}
	if len(got) != 2 || got[1].Cedula != "2-2222-2222" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestGetAll_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "nombre", "apellido", "nacionalidad", "estatura", "fecha_nacimiento", "edad", "cedula"})
	mock.ExpectQuery(`SELECT`).WillReturnRows(rows)

	got, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	u := sampleUsuario()
	u.Nombre = "Andrés"

	q := `(?s)^UPDATE\s+usuarios\s+SET\s+nombre\s*=\s*\$1,.*WHERE\s+cedula\s*=\s*\$8\s+RETURNING\s+id\s*$`

	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(7))
	mock.ExpectQuery(q).
		WithArgs(u.Nombre, u.Apellido, u.Nacionalidad, u.Estatura, u.FechaNacimiento, u.Edad, u.Cedula, "1-1111-1111").
		WillReturnRows(rows)

	got, err := repo.Update(context.Background(), "1-1111-1111", u)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.ID != 7 || got.Nombre != "Andrés" {
		t.Fatalf("unexpected usuario: %+v", got)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), "0-0000-0000", sampleUsuario())
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+usuarios\s+WHERE\s+cedula\s*=\s*\$1\s*$`

	mock.ExpectExec(q).
		WithArgs("1-1111-1111").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "1-1111-1111"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE`).
		WithArgs("0-0000-0000").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "0-0000-0000")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}
