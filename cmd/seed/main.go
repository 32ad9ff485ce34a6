package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/internal/records"
)

// seeds a partition with made up exercises and workout entries,
// useful for local development and demos
func main() {
	redisHost := flag.String("redis-host", "localhost", "redis host")
	redisPort := flag.String("redis-port", "6379", "redis port")
	user := flag.String("user", "", "user id whose partition to seed (empty for anonymous)")
	exercisesCount := flag.Int("exercises", 6, "number of exercises to create")
	entriesPerExercise := flag.Int("entries", 8, "number of workout entries per exercise")
	flag.Parse()

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(*redisHost, *redisPort),
		Password: os.Getenv("LIFTLOG_REDIS_PASS"),
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Errorf("close redis client: %s", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to ping redis: %s", err)
	}

	store := records.NewStore(rdb)
	partition := records.PartitionFor(*user)

	liftNames := []string{
		"Back Squat", "Bench Press", "Deadlift", "Overhead Press",
		"Barbell Row", "Front Squat", "Incline Bench", "Romanian Deadlift",
		"Pull Up", "Hip Thrust",
	}
	gofakeit.ShuffleStrings(liftNames)
	if *exercisesCount > len(liftNames) {
		*exercisesCount = len(liftNames)
	}

	now := time.Now()
	var exercises []records.Exercise
	var workouts []records.Entry

	for i := 0; i < *exercisesCount; i++ {
		exercise := records.Exercise{
			ID:        records.NewID(),
			Name:      liftNames[i],
			CreatedAt: gofakeit.DateRange(now.AddDate(0, -6, 0), now.AddDate(0, -3, 0)),
		}
		exercises = append(exercises, exercise)

		// rough linear progression with some noise, so the trends look alive
		weight := float64(gofakeit.Number(40, 120))
		for j := 0; j < *entriesPerExercise; j++ {
			weight += gofakeit.Float64Range(-2.5, 5)
			if weight < 20 {
				weight = 20
			}
			workouts = append(workouts, records.Entry{
				ID:         records.NewID(),
				ExerciseID: exercise.ID,
				Weight:     weight,
				Reps:       gofakeit.Number(3, 12),
				Sets:       gofakeit.Number(2, 5),
				Difficulty: gofakeit.Number(1, 5),
				Date: gofakeit.DateRange(
					now.AddDate(0, -3, 0).Add(time.Duration(j)*7*24*time.Hour),
					now.AddDate(0, -3, 0).Add(time.Duration(j+1)*7*24*time.Hour),
				),
			})
		}
	}

	if err := store.SetPartition(ctx, partition, exercises, workouts); err != nil {
		log.Fatalf("failed to seed partition [%s]: %s", partition, err)
	}

	fmt.Printf(
		"partition [%s] seeded: %d exercises, %d workout entries\n",
		partition, len(exercises), len(workouts),
	)
}
