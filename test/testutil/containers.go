package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fhuszti/event-medias-go/internal/logger"
	_ "github.com/go-sql-driver/mysql"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	MinioUser     = "minioadmin"
	MinioPassword = "minioadmin"
)

type ContainerInfo struct {
	// DSN for MariaDB, host:port for MinIO and Redis
	Addr    string
	Cleanup func()
}

// startContainer runs image:tag and waits until ready succeeds against the
// mapped internal port.
func startContainer(opts *dockertest.RunOptions, internalPort string, ready func(hostPort string) error) (*ContainerInfo, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not connect to docker: %w", err)
	}

	resource, err := pool.RunWithOptions(opts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("could not start %s container: %w", opts.Repository, err)
	}

	hostPort := resource.GetPort(internalPort)
	if err := pool.Retry(func() error { return ready(hostPort) }); err != nil {
		_ = pool.Purge(resource)
		return nil, fmt.Errorf("%s did not become ready: %w", opts.Repository, err)
	}

	return &ContainerInfo{
		Addr: hostPort,
		Cleanup: func() {
			if err := pool.Purge(resource); err != nil {
				logger.Warnf(context.Background(), "could not purge %s container: %s", opts.Repository, err)
			}
		},
	}, nil
}

// StartMariaDBContainer returns a DSN pointing at the "testdb" schema name;
// SetupTestDB derives a fresh database from it per test.
func StartMariaDBContainer() (*ContainerInfo, error) {
	ci, err := startContainer(&dockertest.RunOptions{
		Repository: "mariadb",
		Tag:        "10.11",
		Env:        []string{"MARIADB_ROOT_PASSWORD=secret"},
	}, "3306/tcp", func(port string) error {
		db, err := sql.Open("mysql", fmt.Sprintf("root:secret@(localhost:%s)/mysql?parseTime=true", port))
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return db.Ping()
	})
	if err != nil {
		return nil, err
	}
	ci.Addr = fmt.Sprintf("root:secret@(localhost:%s)/testdb?parseTime=true", ci.Addr)
	return ci, nil
}

func StartMinIOContainer() (*ContainerInfo, error) {
	ci, err := startContainer(&dockertest.RunOptions{
		Repository: "minio/minio",
		Tag:        "latest",
		Env: []string{
			"MINIO_ROOT_USER=" + MinioUser,
			"MINIO_ROOT_PASSWORD=" + MinioPassword,
		},
		Cmd: []string{"server", "/data"},
	}, "9000/tcp", func(port string) error {
		client, err := minio.New("localhost:"+port, &minio.Options{
			Creds:  credentials.NewStaticV4(MinioUser, MinioPassword, ""),
			Secure: false,
		})
		if err != nil {
			return err
		}
		// ListBuckets is a light operation to check health
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, err = client.ListBuckets(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	ci.Addr = "localhost:" + ci.Addr
	return ci, nil
}

func StartRedisContainer() (*ContainerInfo, error) {
	ci, err := startContainer(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7",
	}, "6379/tcp", func(port string) error {
		rdb := redis.NewClient(&redis.Options{Addr: "localhost:" + port})
		defer func() { _ = rdb.Close() }()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return rdb.Ping(ctx).Err()
	})
	if err != nil {
		return nil, err
	}
	ci.Addr = "localhost:" + ci.Addr
	return ci, nil
}
