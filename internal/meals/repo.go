package meals

import (
	"context"
	"fmt"

	"github.com/2beens/fittrack/internal/db"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	mealColumns     = `id, user_id, name, calories, protein, carbs, fat, serving_size, servings, to_char(date, 'YYYY-MM-DD'), created_at`
	favoriteColumns = `id, user_id, name, calories, protein, carbs, fat, serving_size, default_servings, created_at`
)

type Repo struct {
	db db.Querier
}

func NewRepo(db db.Querier) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, meal Meal) (_ *Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meals.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", meal.UserID))

	date, err := pkg.ParseDate(meal.Date)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		INSERT INTO meals (user_id, name, calories, protein, carbs, fat, serving_size, servings, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+mealColumns,
		meal.UserID, meal.Name, meal.Calories, meal.Protein, meal.Carbs, meal.Fat, meal.ServingSize, meal.Servings, date,
	)
	if err != nil {
		return nil, err
	}

	created, err := pgx.CollectExactlyOneRow(rows, scanMeal)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *Repo) ListByDate(ctx context.Context, userID int, date string) (_ []Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meals.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	day, err := pkg.ParseDate(date)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+mealColumns+`
		FROM meals
		WHERE user_id = $1 AND date = $2
		ORDER BY created_at DESC`,
		userID, day,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanMeal)
}

// Recent returns the latest meals of the user regardless of date.
func (r *Repo) Recent(ctx context.Context, userID int) (_ []Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meals.recent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT `+mealColumns+`
		FROM meals
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`,
		userID, RecentMealsLimit,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanMeal)
}

func (r *Repo) Delete(ctx context.Context, id, userID int) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meals.delete")
	defer span.End()

	tag, err := r.db.Exec(ctx, `DELETE FROM meals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("delete meal %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMealNotFound
	}
	return nil
}

// TotalCaloriesByDate sums the calories column as entered; servings are not multiplied in.
func (r *Repo) TotalCaloriesByDate(ctx context.Context, userID int, date string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meals.calories")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	day, err := pkg.ParseDate(date)
	if err != nil {
		return 0, err
	}

	var total int
	if err = r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(calories), 0)::int
		FROM meals
		WHERE user_id = $1 AND date = $2`,
		userID, day,
	).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *Repo) MacrosByDate(ctx context.Context, userID int, date string) (_ Macros, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meals.macros")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	day, err := pkg.ParseDate(date)
	if err != nil {
		return Macros{}, err
	}

	var macros Macros
	if err = r.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(protein), 0)::float8,
			COALESCE(SUM(carbs), 0)::float8,
			COALESCE(SUM(fat), 0)::float8
		FROM meals
		WHERE user_id = $1 AND date = $2`,
		userID, day,
	).Scan(&macros.Protein, &macros.Carbs, &macros.Fat); err != nil {
		return Macros{}, err
	}
	return macros, nil
}

func (r *Repo) CreateFavorite(ctx context.Context, favorite Favorite) (_ *Favorite, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.favorites.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		INSERT INTO favorite_meals (user_id, name, calories, protein, carbs, fat, serving_size, default_servings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+favoriteColumns,
		favorite.UserID, favorite.Name, favorite.Calories, favorite.Protein, favorite.Carbs, favorite.Fat,
		favorite.ServingSize, favorite.DefaultServings,
	)
	if err != nil {
		return nil, err
	}

	created, err := pgx.CollectExactlyOneRow(rows, scanFavorite)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *Repo) ListFavorites(ctx context.Context, userID int) (_ []Favorite, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.favorites.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT `+favoriteColumns+`
		FROM favorite_meals
		WHERE user_id = $1
		ORDER BY name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanFavorite)
}

func (r *Repo) DeleteFavorite(ctx context.Context, id, userID int) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.favorites.delete")
	defer span.End()

	tag, err := r.db.Exec(ctx, `DELETE FROM favorite_meals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("delete favorite %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func scanMeal(row pgx.CollectableRow) (Meal, error) {
	var m Meal
	err := row.Scan(
		&m.ID, &m.UserID, &m.Name, &m.Calories,
		&m.Protein, &m.Carbs, &m.Fat, &m.ServingSize, &m.Servings,
		&m.Date, &m.CreatedAt,
	)
	return m, err
}

func scanFavorite(row pgx.CollectableRow) (Favorite, error) {
	var f Favorite
	err := row.Scan(
		&f.ID, &f.UserID, &f.Name, &f.Calories,
		&f.Protein, &f.Carbs, &f.Fat, &f.ServingSize, &f.DefaultServings,
		&f.CreatedAt,
	)
	return f, err
}
