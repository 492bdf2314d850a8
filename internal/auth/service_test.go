package auth_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/leave-management/internal/auth"
	"github.com/frahmantamala/leave-management/internal/manager"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Module Suite")
}

// Mock manager directory for testing
type mockManagerDirectory struct {
	managers []*manager.Manager
}

func (m *mockManagerDirectory) GetByUsername(username string) (*manager.Manager, error) {
	for _, mgr := range m.managers {
		if mgr.Username == username {
			return mgr, nil
		}
	}
	return nil, manager.ErrNotFound
}

func (m *mockManagerDirectory) GetByID(id int64) (*manager.Manager, error) {
	for _, mgr := range m.managers {
		if mgr.ID == id {
			return mgr, nil
		}
	}
	return nil, manager.ErrNotFound
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	Expect(err).ToNot(HaveOccurred())
	return string(hash)
}

var _ = Describe("AuthService", func() {
	var (
		service   *auth.Service
		directory *mockManagerDirectory
		tokenGen  *auth.JWTTokenGenerator
	)

	BeforeEach(func() {
		directory = &mockManagerDirectory{
			managers: []*manager.Manager{
				{ID: 1, Username: "Aya", PasswordHash: mustHash("123456")},
				{ID: 2, Username: "Fatima Zahra", PasswordHash: mustHash("123456")},
			},
		}
		tokenGen = auth.NewJWTTokenGenerator(
			"test-access-secret-for-unit-tests-only",
			"test-refresh-secret-for-unit-tests-only",
			15*time.Minute,
			7*24*time.Hour,
		)
		service = auth.NewService(directory, tokenGen)
	})

	Describe("Authenticate", func() {
		Context("with valid credentials", func() {
			It("should return access and refresh tokens", func() {
				// When
				tokens, err := service.Authenticate(auth.LoginDTO{Username: "Aya", Password: "123456"})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(tokens.AccessToken).ToNot(BeEmpty())
				Expect(tokens.RefreshToken).ToNot(BeEmpty())
			})

			It("should embed the manager identity in the access token", func() {
				// When
				tokens, err := service.Authenticate(auth.LoginDTO{Username: "Fatima Zahra", Password: "123456"})

				// Then
				Expect(err).ToNot(HaveOccurred())
				claims, err := service.ValidateAccessToken(tokens.AccessToken)
				Expect(err).ToNot(HaveOccurred())
				Expect(claims.ManagerID).To(Equal(int64(2)))
				Expect(claims.Username).To(Equal("Fatima Zahra"))
			})
		})

		Context("with a wrong password", func() {
			It("should return the generic credentials error", func() {
				// When
				_, err := service.Authenticate(auth.LoginDTO{Username: "Aya", Password: "wrong"})

				// Then
				Expect(err).To(MatchError(auth.ErrInvalidCredentials))
			})
		})

		Context("with an unknown username", func() {
			It("should return the same generic credentials error", func() {
				// When
				_, err := service.Authenticate(auth.LoginDTO{Username: "nobody", Password: "123456"})

				// Then
				Expect(err).To(MatchError(auth.ErrInvalidCredentials))
			})
		})

		Context("with a username in the wrong case", func() {
			It("should not match case-insensitively", func() {
				// When
				_, err := service.Authenticate(auth.LoginDTO{Username: "aya", Password: "123456"})

				// Then
				Expect(err).To(MatchError(auth.ErrInvalidCredentials))
			})
		})

		Context("with missing fields", func() {
			It("should return a validation error for an empty username", func() {
				// When
				_, err := service.Authenticate(auth.LoginDTO{Password: "123456"})

				// Then
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("username"))
			})

			It("should return a validation error for an empty password", func() {
				// When
				_, err := service.Authenticate(auth.LoginDTO{Username: "Aya"})

				// Then
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("password"))
			})
		})
	})

	Describe("RefreshTokens", func() {
		It("should issue a fresh token pair from a valid refresh token", func() {
			// Given
			tokens, err := service.Authenticate(auth.LoginDTO{Username: "Aya", Password: "123456"})
			Expect(err).ToNot(HaveOccurred())

			// When
			renewed, err := service.RefreshTokens(tokens.RefreshToken)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(renewed.AccessToken).ToNot(BeEmpty())
			Expect(renewed.RefreshToken).ToNot(BeEmpty())

			claims, err := service.ValidateAccessToken(renewed.AccessToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.ManagerID).To(Equal(int64(1)))
		})

		It("should reject garbage tokens", func() {
			// When
			_, err := service.RefreshTokens("not-a-token")

			// Then
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})

		It("should reject a token for a manager that no longer exists", func() {
			// Given
			tokens, err := service.Authenticate(auth.LoginDTO{Username: "Aya", Password: "123456"})
			Expect(err).ToNot(HaveOccurred())
			directory.managers = directory.managers[1:]

			// When
			_, err = service.RefreshTokens(tokens.RefreshToken)

			// Then
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})
	})

	Describe("ValidateAccessToken", func() {
		It("should reject a tampered token", func() {
			// Given
			tokens, err := service.Authenticate(auth.LoginDTO{Username: "Aya", Password: "123456"})
			Expect(err).ToNot(HaveOccurred())

			// When
			_, err = service.ValidateAccessToken(tokens.AccessToken + "x")

			// Then
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})

		It("should reject an expired token", func() {
			// Given a generator whose tokens are already expired
			expiredGen := &auth.JWTTokenGenerator{
				AccessTokenSecret:  []byte("test-access-secret-for-unit-tests-only"),
				RefreshTokenSecret: []byte("test-refresh-secret-for-unit-tests-only"),
				AccessTokenTTL:     -time.Minute,
				RefreshTokenTTL:    7 * 24 * time.Hour,
			}
			token, err := expiredGen.GenerateAccessToken(1, "Aya")
			Expect(err).ToNot(HaveOccurred())

			// When
			_, err = service.ValidateAccessToken(token)

			// Then
			Expect(err).To(MatchError(auth.ErrTokenExpired))
		})
	})

	Describe("HashPassword", func() {
		It("should produce a hash that verifies against the original password", func() {
			// When
			hash, err := service.HashPassword("s3cret")

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(hash).ToNot(Equal("s3cret"))
			Expect(bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret"))).To(Succeed())
		})
	})
})
