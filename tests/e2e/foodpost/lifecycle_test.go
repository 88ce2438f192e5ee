//go:build e2e

package foodpost_test

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"food-rescue/internal/domain/foodpost"
	"food-rescue/internal/domain/user"
	"food-rescue/internal/handler/dto/response"
	"food-rescue/internal/infra/notifier"
	"food-rescue/tests/common/authtest"
	"food-rescue/tests/common/builder"
	"food-rescue/tests/common/dbtest"
	"food-rescue/tests/common/httptest"
	"food-rescue/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const postsURL = "/api/posts"

type lifecycleSuite struct {
	e2e.SharedSuite
}

func TestLifecycleSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(lifecycleSuite))
}

func postURL(id uuid.UUID, action string) string {
	u := postsURL + "/" + id.String()
	if action != "" {
		u += "/" + action
	}
	return u
}

func (s *lifecycleSuite) login(email string, role user.Role) (uuid.UUID, string) {
	return authtest.CreateAndLogin(s.T(), s.DB, s.Router, email, string(role))
}

func (s *lifecycleSuite) createPost(token string, b *builder.FoodPostBuilder) response.PostResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, postsURL, b.BuildDTO(), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var post response.PostResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &post))
	return post
}

func (s *lifecycleSuite) getPost(token string, id uuid.UUID) response.PostResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, postURL(id, ""), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var post response.PostResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &post))
	return post
}

func (s *lifecycleSuite) TestReserveAndAccept() {
	s.Run("first recipient reserves and accepts", func() {
		t := s.T()
		_, donor := s.login("bakery@example.com", user.RoleDonor)
		recipientID, recipient := s.login("shelter@example.com", user.RoleRecipient)
		_, other := s.login("pantry@example.com", user.RoleRecipient)

		post := s.createPost(donor, builder.NewFoodPostBuilder())
		require.Equal(t, foodpost.StatusAvailable.String(), post.Status)
		require.True(t, e2e.Epoch.Add(90*time.Minute).Equal(post.ExpiresAt))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, postURL(post.ID, "reservation"), nil, recipient)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var res response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.Equal(t, recipientID, res.RecipientID)
		require.True(t, e2e.Epoch.Add(s.Config.Lifecycle.ReservationTTL).Equal(res.ReservedUntil))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, postURL(post.ID, "reservation"), nil, other)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, postURL(post.ID, "acceptance"), nil, other)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		s.Clock.Add(2 * time.Minute)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, postURL(post.ID, "acceptance"), nil, recipient)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		got := s.getPost(donor, post.ID)
		require.Equal(t, foodpost.StatusAccepted.String(), got.Status)
		require.Equal(t, int64(2), got.Version)
		require.NotNil(t, got.RecipientID)
		require.Equal(t, recipientID, *got.RecipientID)

		require.Equal(t, 1, dbtest.CountJobs(t, s.DB, notifier.Topic(foodpost.EventReserved), post.ID))
		require.Equal(t, 1, dbtest.CountJobs(t, s.DB, notifier.Topic(foodpost.EventAccepted), post.ID))
	})

	s.Run("donor cannot reserve and recipient cannot post", func() {
		t := s.T()
		_, donor := s.login("bakery@example.com", user.RoleDonor)
		_, recipient := s.login("shelter@example.com", user.RoleRecipient)

		post := s.createPost(donor, builder.NewFoodPostBuilder())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, postURL(post.ID, "reservation"), nil, donor)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, postsURL, builder.NewFoodPostBuilder().BuildDTO(), recipient)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}

func (s *lifecycleSuite) TestConcurrentReservations() {
	s.Run("exactly one recipient wins", func() {
		t := s.T()
		_, donor := s.login("bakery@example.com", user.RoleDonor)
		post := s.createPost(donor, builder.NewFoodPostBuilder())

		const contenders = 8
		tokens := make([]string, contenders)
		for i := range tokens {
			_, tokens[i] = s.login(uuid.NewString()+"@example.com", user.RoleRecipient)
		}

		var (
			wg    sync.WaitGroup
			start = make(chan struct{})
			codes = make([]int, contenders)
		)
		for i, token := range tokens {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				codes[i] = httptest.PerformRequest(t, s.Router, http.MethodPost, postURL(post.ID, "reservation"), nil, token).Code
			}()
		}
		close(start)
		wg.Wait()

		created, conflicts := 0, 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicts++
			}
		}
		require.Equal(t, 1, created)
		require.Equal(t, contenders-1, conflicts)

		got := s.getPost(donor, post.ID)
		require.Equal(t, foodpost.StatusReserved.String(), got.Status)
		require.Equal(t, int64(1), got.Version)
		require.Equal(t, 1, dbtest.CountJobs(t, s.DB, notifier.Topic(foodpost.EventReserved), post.ID))
	})
}

func (s *lifecycleSuite) TestExpiry() {
	s.Run("lapsed reservation cannot be accepted and is swept", func() {
		t := s.T()
		_, donor := s.login("bakery@example.com", user.RoleDonor)
		_, recipient := s.login("shelter@example.com", user.RoleRecipient)
		post := s.createPost(donor, builder.NewFoodPostBuilder())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, postURL(post.ID, "reservation"), nil, recipient)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		s.Clock.Add(s.Config.Lifecycle.ReservationTTL + time.Minute)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, postURL(post.ID, "acceptance"), nil, recipient)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		result := s.Sweeper.SweepNow(t.Context())
		require.Equal(t, 1, result.Expired)

		got := s.getPost(donor, post.ID)
		require.Equal(t, foodpost.StatusExpired.String(), got.Status)
		require.Nil(t, got.RecipientID)
		require.Equal(t, 1, dbtest.CountJobs(t, s.DB, notifier.Topic(foodpost.EventExpired), post.ID))

		again := s.Sweeper.SweepNow(t.Context())
		require.Zero(t, again.Expired)
	})

	s.Run("expired post leaves the feed and rejects reservations", func() {
		t := s.T()
		_, donor := s.login("bakery@example.com", user.RoleDonor)
		_, recipient := s.login("shelter@example.com", user.RoleRecipient)
		short := s.createPost(donor, builder.NewFoodPostBuilder().WithDuration(10))
		long := s.createPost(donor, builder.NewFoodPostBuilder().WithDuration(120))

		s.Clock.Add(10 * time.Minute)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, postURL(short.ID, "reservation"), nil, recipient)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, postsURL, nil, recipient)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var feed response.FeedResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &feed))
		require.Len(t, feed.Items, 1)
		require.Equal(t, long.ID, feed.Items[0].ID)
	})
}

func (s *lifecycleSuite) TestCancellation() {
	s.Run("recipient releases and donor cancels", func() {
		t := s.T()
		_, donor := s.login("bakery@example.com", user.RoleDonor)
		_, otherDonor := s.login("cafe@example.com", user.RoleDonor)
		_, recipient := s.login("shelter@example.com", user.RoleRecipient)
		post := s.createPost(donor, builder.NewFoodPostBuilder())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, postURL(post.ID, "reservation"), nil, recipient)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, postURL(post.ID, "reservation"), nil, recipient)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Equal(t, foodpost.StatusAvailable.String(), s.getPost(donor, post.ID).Status)
		require.Equal(t, 1, dbtest.CountJobs(t, s.DB, notifier.Topic(foodpost.EventReleased), post.ID))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, postURL(post.ID, "cancel"), nil, otherDonor)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, postURL(post.ID, "cancel"), nil, donor)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Equal(t, foodpost.StatusCancelled.String(), s.getPost(donor, post.ID).Status)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, postURL(post.ID, "reservation"), nil, recipient)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})
}
