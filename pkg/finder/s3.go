package finder

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	log "github.com/sirupsen/logrus"
)

// S3Scanner is a Scanner implementation that lists the objects under one or
// more prefixes in an S3 bucket. Only object metadata is fetched; the
// timestamp checked by the filters is the object's LastModified.
type S3Scanner struct {
	S3Client   *s3.S3
	Bucket     string
	Prefixes   []string
	NumWorkers int
}

var _ Scanner = (*S3Scanner)(nil)

type s3PrefixTask struct {
	prefix string
	index  int
}

// Run starts the s3 scanner. Entries are passed to the argument entry
// channel.
func (s *S3Scanner) Run(
	ctx context.Context,
	entryChan chan Entry,
) error {
	prefixChan := make(chan s3PrefixTask, len(s.Prefixes))

	for index, prefix := range s.Prefixes {
		prefixChan <- s3PrefixTask{
			prefix: prefix,
			index:  index,
		}
	}
	close(prefixChan)

	numWorkers := s.NumWorkers
	if numWorkers > len(s.Prefixes) {
		numWorkers = len(s.Prefixes)
	}

	errChan := make(chan error, numWorkers)

	for i := 0; i < numWorkers; i++ {
		go func() {
			errChan <- s.runSubTasks(ctx, entryChan, prefixChan)
		}()
	}

	for i := 0; i < numWorkers; i++ {
		if err := <-errChan; err != nil {
			return err
		}
	}
	return nil
}

func (s *S3Scanner) runSubTasks(
	ctx context.Context,
	entryChan chan Entry,
	prefixChan chan s3PrefixTask,
) error {
	for {
		select {
		case subTask, ok := <-prefixChan:
			if !ok {
				return nil
			}

			err := s.processPrefix(ctx, entryChan, subTask)
			if err != nil {
				return fmt.Errorf(
					"Error processing prefix %s: %+v",
					subTask.prefix,
					err,
				)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *S3Scanner) processPrefix(
	ctx context.Context,
	entryChan chan Entry,
	subTask s3PrefixTask,
) error {
	log.Debugf("Processing prefix %s", subTask.prefix)

	keysRead := 0

	err := s.S3Client.ListObjectsPagesWithContext(
		ctx,
		&s3.ListObjectsInput{
			Bucket: aws.String(s.Bucket),
			Prefix: aws.String(subTask.prefix),
		},
		func(output *s3.ListObjectsOutput, hasMore bool) bool {
			for _, objInfo := range output.Contents {
				entry := Entry{
					Path:    aws.StringValue(objInfo.Key),
					Root:    subTask.index,
					Size:    aws.Int64Value(objInfo.Size),
					ModTime: aws.TimeValue(objInfo.LastModified),
				}

				select {
				case entryChan <- entry:
				case <-ctx.Done():
					return false
				}
				keysRead++
			}

			return true
		},
	)
	if err != nil {
		return err
	}

	log.Debugf("Read %d keys from prefix %s", keysRead, subTask.prefix)
	return ctx.Err()
}
