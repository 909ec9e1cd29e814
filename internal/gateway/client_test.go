package gateway_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"clusterview/internal/domain/resource"
	"clusterview/internal/domain/session"
	"clusterview/internal/domain/user"
	"clusterview/internal/gateway"
	"clusterview/internal/gateway/gatewaytest"
)

func newTestClient(t *testing.T) (*gateway.Client, *gatewaytest.Server) {
	t.Helper()

	fake := gatewaytest.New()
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return gateway.NewClient(srv.URL, log), fake
}

func adminIdentity() session.Session {
	return session.Session{Email: "Admin@gmail.com", Password: "123"}
}

func userIdentity() session.Session {
	return session.Session{Email: "asha@example.com", Password: "hunter2"}
}

func seedAccount(fake *gatewaytest.Server) {
	fake.AddAccount(gatewaytest.Account{
		Username:       "asha",
		Email:          "asha@example.com",
		Password:       "hunter2",
		FavoriteAnimal: "red panda",
		ContactNumber:  "9812345678",
	})
}

func TestClient_Login(t *testing.T) {
	client, fake := newTestClient(t)
	seedAccount(fake)

	t.Run("success", func(t *testing.T) {
		err := client.Login(context.Background(), user.Credentials{
			Email: "asha@example.com", Password: "hunter2",
		})
		require.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		err := client.Login(context.Background(), user.Credentials{
			Email: "asha@example.com", Password: "wrong",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email or password")
	})

	t.Run("unknown user", func(t *testing.T) {
		err := client.Login(context.Background(), user.Credentials{
			Email: "nobody@example.com", Password: "hunter2",
		})
		require.Error(t, err)
	})
}

// Business failures arrive as an error payload even on a 200; the
// client must treat them as errors regardless of status.
func TestClient_ErrorPayloadOn200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"error":"User already exists"}`))
	}))
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := gateway.NewClient(srv.URL, log)

	_, err := client.Register(context.Background(), user.Registration{Email: "x@example.com"})
	require.Error(t, err)
	assert.Equal(t, "User already exists", err.Error())
}

func TestClient_StatusFallbackWithoutPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := gateway.NewClient(srv.URL, log)

	err := client.Login(context.Background(), user.Credentials{Email: "a@b.c", Password: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server returned status 502")
}

func TestClient_RegistrationFlow(t *testing.T) {
	client, fake := newTestClient(t)
	fake.SetOTP("asha@example.com", "654321")

	ctx := context.Background()
	require.NoError(t, client.SendOTP(ctx, "asha@example.com"))

	require.Error(t, client.VerifyOTP(ctx, "asha@example.com", "111111"))
	require.NoError(t, client.VerifyOTP(ctx, "asha@example.com", "654321"))

	message, err := client.Register(ctx, user.Registration{
		Username:       "asha",
		Email:          "asha@example.com",
		Password:       "hunter2",
		FavoriteAnimal: "red panda",
		ContactNumber:  "9812345678",
	})
	require.NoError(t, err)
	assert.Equal(t, "Registration Successful", message)

	// The account can log in now.
	require.NoError(t, client.Login(ctx, user.Credentials{
		Email: "asha@example.com", Password: "hunter2",
	}))
}

func TestClient_RecoverPassword(t *testing.T) {
	client, fake := newTestClient(t)
	seedAccount(fake)

	password, err := client.RecoverPassword(context.Background(), user.Recovery{
		Email: "asha@example.com", FavoriteAnimal: "red panda",
	})
	require.NoError(t, err)
	assert.Equal(t, "hunter2", password)

	_, err = client.RecoverPassword(context.Background(), user.Recovery{
		Email: "asha@example.com", FavoriteAnimal: "cat",
	})
	require.Error(t, err)
}

func TestClient_FetchCollectionAdmin(t *testing.T) {
	client, fake := newTestClient(t)
	fake.Seed("food",
		resource.Record{"_id": "f1", "foodname": "Momo"},
		resource.Record{"_id": "f2", "foodname": "Thali"},
	)

	records, err := client.FetchCollection(context.Background(), resource.Food(), adminIdentity())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "f1", records[0].ID())
}

func TestClient_FetchCollectionSelf(t *testing.T) {
	client, fake := newTestClient(t)
	fake.Seed("job", resource.Record{"_id": "j1", "position": "cook"})

	records, err := client.FetchCollection(context.Background(), resource.MyJob(), userIdentity())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "j1", records[0].ID())
}

// The shop screens use the public search endpoints with the buyer's
// own identity, not the admin fetch-all routes.
func TestClient_SearchFoodReturnsWholeCollection(t *testing.T) {
	client, fake := newTestClient(t)
	fake.Seed("food",
		resource.Record{"_id": "f1", "foodname": "Momo"},
		resource.Record{"_id": "f2", "foodname": "Thali"},
	)

	records, err := client.FetchCollection(context.Background(), resource.ShopFood(), userIdentity())
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestClient_SearchRooms(t *testing.T) {
	client, fake := newTestClient(t)
	fake.Seed("room",
		resource.Record{"_id": "r1", "roomType": "PG", "price": "4500", "location": "Kirtipur"},
		resource.Record{"_id": "r2", "roomType": "2BHK", "price": "12000", "location": "Baneshwor"},
		resource.Record{"_id": "r3", "roomType": "2BHK", "price": "25000", "location": "Lazimpat"},
	)

	ctx := context.Background()

	t.Run("no filters returns everything", func(t *testing.T) {
		records, err := client.SearchRooms(ctx, userIdentity(), gateway.RoomSearch{})
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})

	t.Run("type is exact", func(t *testing.T) {
		records, err := client.SearchRooms(ctx, userIdentity(), gateway.RoomSearch{Type: "2BHK"})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "r2", records[0].ID())
	})

	t.Run("price bucket", func(t *testing.T) {
		records, err := client.SearchRooms(ctx, userIdentity(), gateway.RoomSearch{PriceRange: "10000-15000"})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "r2", records[0].ID())
	})

	t.Run("open-ended price bucket", func(t *testing.T) {
		records, err := client.SearchRooms(ctx, userIdentity(), gateway.RoomSearch{PriceRange: "20000+"})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "r3", records[0].ID())
	})

	t.Run("location is a substring match", func(t *testing.T) {
		records, err := client.SearchRooms(ctx, userIdentity(), gateway.RoomSearch{Location: "banesh"})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "r2", records[0].ID())
	})

	t.Run("filters combine", func(t *testing.T) {
		records, err := client.SearchRooms(ctx, userIdentity(), gateway.RoomSearch{
			Type: "2BHK", PriceRange: "20000+",
		})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "r3", records[0].ID())
	})

	t.Run("failure propagates", func(t *testing.T) {
		fake.FailWith("/search-room", "Something went wrong")
		_, err := client.SearchRooms(ctx, userIdentity(), gateway.RoomSearch{})
		require.Error(t, err)
		assert.Equal(t, "Something went wrong", err.Error())
	})
}

func TestClient_SearchJobs(t *testing.T) {
	client, fake := newTestClient(t)
	fake.Seed("job",
		resource.Record{"_id": "j1", "title": "Line Cook", "company": "Everest Kitchen"},
		resource.Record{"_id": "j2", "title": "Barista", "company": "Himal Beans"},
	)

	ctx := context.Background()

	t.Run("empty query returns everything", func(t *testing.T) {
		records, err := client.SearchJobs(ctx, "")
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("keyword matches title or company", func(t *testing.T) {
		records, err := client.SearchJobs(ctx, "everest")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "j1", records[0].ID())
	})

	t.Run("no matches", func(t *testing.T) {
		records, err := client.SearchJobs(ctx, "plumber")
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestClient_UpdateSendsMultipartForm(t *testing.T) {
	client, fake := newTestClient(t)
	fake.Seed("room", resource.Record{
		"_id": "r1", "roomType": "single", "price": "8000",
	})

	sub := resource.Submission{
		Fields: map[string]string{
			"roomType":  "double",
			"price":     "9000",
			"location":  "Kirtipur",
			"contactNo": "9812345678",
			"forroom":   "students",
		},
		Bools:    map[string]bool{"availability": false},
		Existing: []string{"old1.jpg", "old2.jpg"},
		Uploads: []resource.Upload{
			{Filename: "new.jpg", Data: []byte("jpegdata")},
		},
	}

	err := client.Update(context.Background(), resource.Room(), "r1", userIdentity(), sub)
	require.NoError(t, err)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	call := calls[0]
	assert.Equal(t, "/update-room", call.Path)
	assert.Equal(t, []string{"r1"}, call.Fields["roomId"])
	assert.Equal(t, []string{"asha@example.com"}, call.Fields["email"])
	assert.Equal(t, []string{"double"}, call.Fields["roomType"])
	assert.Equal(t, []string{"false"}, call.Fields["availability"])
	// Retained references go out as repeated existingImages fields.
	assert.Equal(t, []string{"old1.jpg", "old2.jpg"}, call.Fields["existingImages"])
	assert.Equal(t, []string{"new.jpg"}, call.Files["images"])

	rooms := fake.Collection("room")
	require.Len(t, rooms, 1)
	roomType, _ := rooms[0].Lookup("roomType")
	assert.Equal(t, "double", roomType)
}

func TestClient_UpdateJobSendsSingleLogo(t *testing.T) {
	client, fake := newTestClient(t)
	fake.Seed("job", resource.Record{"_id": "j1", "position": "cook"})

	sub := resource.Submission{
		Fields: map[string]string{
			"title":    "Head Cook",
			"company":  "Everest Kitchen",
			"salary":   "40000",
			"location": "Thamel",
		},
		Uploads: []resource.Upload{
			{Filename: "logo.png", Data: []byte("pngdata")},
			{Filename: "ignored.png", Data: []byte("pngdata")},
		},
	}

	err := client.Update(context.Background(), resource.Job(), "j1", userIdentity(), sub)
	require.NoError(t, err)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	// Only the first upload fills a single-file slot.
	assert.Equal(t, []string{"logo.png"}, calls[0].Files["logo"])
}

func TestClient_UpdateRejectedForReadOnly(t *testing.T) {
	client, _ := newTestClient(t)

	err := client.Update(context.Background(), resource.Queries(), "q1", adminIdentity(), resource.Submission{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be updated")
}

func TestClient_Insert(t *testing.T) {
	client, fake := newTestClient(t)

	sub := resource.Submission{
		Fields: map[string]string{
			"foodname": "Momo", "shopname": "Everest Kitchen",
			"description": "steamed", "price": "120",
			"category": "snacks", "address": "Thamel",
		},
		Uploads: []resource.Upload{{Filename: "momo.jpg", Data: []byte("img")}},
	}

	err := client.Insert(context.Background(), resource.Food(), userIdentity(), sub)
	require.NoError(t, err)

	foods := fake.Collection("food")
	require.Len(t, foods, 1)
	name, _ := foods[0].Lookup("foodname")
	assert.Equal(t, "Momo", name)
}

func TestClient_Delete(t *testing.T) {
	client, fake := newTestClient(t)
	fake.Seed("food",
		resource.Record{"_id": "f1", "foodname": "Momo"},
		resource.Record{"_id": "f2", "foodname": "Thali"},
	)

	err := client.Delete(context.Background(), resource.Food(), "f1", userIdentity())
	require.NoError(t, err)

	foods := fake.Collection("food")
	require.Len(t, foods, 1)
	assert.Equal(t, "f2", foods[0].ID())

	err = client.Delete(context.Background(), resource.Food(), "missing", userIdentity())
	require.Error(t, err)
}

func TestClient_Profile(t *testing.T) {
	client, fake := newTestClient(t)
	seedAccount(fake)

	ctx := context.Background()
	profile, err := client.UserDetails(ctx, userIdentity())
	require.NoError(t, err)
	assert.Equal(t, "asha", profile.Username)
	assert.Equal(t, "red panda", profile.FavoriteAnimal)

	profile.Username = "asha k"
	profile.ContactNumber = "9800000000"
	updated, err := client.UpdateUserDetails(ctx, userIdentity(), profile)
	require.NoError(t, err)
	assert.Equal(t, "asha k", updated.Username)
	assert.Equal(t, "9800000000", updated.ContactNumber)
}

func TestClient_Cart(t *testing.T) {
	client, fake := newTestClient(t)
	seedAccount(fake)

	ctx := context.Background()
	rec := resource.Record{"_id": "f1", "foodname": "Momo"}

	require.NoError(t, client.SaveItem(ctx, resource.Food(), "asha@example.com", rec))

	saved, err := client.SavedItems(ctx, resource.Food(), "asha@example.com")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "f1", saved[0].ID())

	require.NoError(t, client.UnsaveItem(ctx, resource.Food(), "asha@example.com", "f1"))

	saved, err = client.SavedItems(ctx, resource.Food(), "asha@example.com")
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestClient_SubmitQuery(t *testing.T) {
	client, fake := newTestClient(t)

	message, err := client.SubmitQuery(context.Background(), "asha", "asha@example.com", "how do I change my listing?")
	require.NoError(t, err)
	assert.NotEmpty(t, message)

	queries := fake.Collection("query")
	require.Len(t, queries, 1)
	name, _ := queries[0].Lookup("name")
	assert.Equal(t, "asha", name)
}

func TestClient_GatewayFailurePropagates(t *testing.T) {
	client, fake := newTestClient(t)
	fake.FailWith("/fetch-all-foods", "database unavailable")

	_, err := client.FetchCollection(context.Background(), resource.Food(), adminIdentity())
	require.Error(t, err)
	assert.Equal(t, "database unavailable", err.Error())
}
