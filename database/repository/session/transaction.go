package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WithTransaction runs fn inside one multi-document transaction. fn receives
// a session-bound context and must use it for all repository calls so the
// idempotency lookup, overlap check and insert commit or abort as one unit.
func (r *MongoSessionRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// LockExpert bumps the expert's lock document inside the current
// transaction. Two concurrent booking transactions for the same expert both
// write this document, so MongoDB aborts the later one with a
// TransientTransactionError and the caller's bounded retry re-runs it after
// the winner has committed. This is the advisory lock that makes the
// check-then-insert sequence serializable per expert.
func (r *MongoSessionRepo) LockExpert(ctx context.Context, expertID string) error {
	filter := bson.M{"expert_id": expertID}
	update := bson.M{
		"$inc": bson.M{"rev": 1},
		"$set": bson.M{"locked_at": time.Now().UTC()},
	}
	_, err := r.lockColl.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to acquire expert lock for %s: %w", expertID, err)
	}
	return nil
}
