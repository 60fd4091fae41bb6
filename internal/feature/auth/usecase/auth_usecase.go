// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"devsocial_backend/internal/feature/auth/domain/entity"
	"devsocial_backend/internal/shared/apperror"
	"devsocial_backend/internal/shared/validation"
)

// dummyHash はユーザーが存在しない場合にもbcrypt比較を実行するためのハッシュです。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

const gravatarBaseURL = "https://www.gravatar.com/avatar/"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail はメールアドレスに一致するユーザーを取得します。
	// 存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID はIDに一致するユーザーを取得します。
	// 存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

// TokenIssuer はセッショントークンを発行します。
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	tokens TokenIssuer
	cost   int
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenIssuer) *authUsecase {
	return &authUsecase{
		users:  users,
		tokens: tokens,
		cost:   bcrypt.DefaultCost,
	}
}

// NormalizeEmail はメールアドレスを比較・保存用の形式に変換します。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GravatarURL はメールアドレスに対応するGravatar画像のURLを返します。
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(NormalizeEmail(email)))
	return gravatarBaseURL + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}

// Register は新規ユーザーを登録し、そのユーザーのトークンを返します。
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (string, error) {
	// 空白のみの名前は未入力として扱う
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validation.New("Name is required")
	}
	email = NormalizeEmail(email)

	_, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return "", ErrEmailAlreadyExists
	case !errors.Is(err, ErrUserNotFound):
		return "", apperror.Storage(ctx, "user.find_by_email", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Avatar:   GravatarURL(email),
	}
	if err := u.users.Create(ctx, user); err != nil {
		// 同時登録で一意制約に負けた場合もここに来る
		if errors.Is(err, ErrEmailAlreadyExists) {
			return "", err
		}
		return "", apperror.Storage(ctx, "user.create", err)
	}

	return u.issue(user.ID)
}

// Login はユーザーを認証し、成功時にトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", apperror.Storage(ctx, "user.find_by_email", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}

	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	return u.issue(user.ID)
}

// CurrentUser はIDに一致するユーザーを返します。
func (u *authUsecase) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, apperror.Storage(ctx, "user.find_by_id", err)
	}
	return user, nil
}

func (u *authUsecase) issue(userID string) (string, error) {
	token, err := u.tokens.Issue(userID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}
