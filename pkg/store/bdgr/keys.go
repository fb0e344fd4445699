package bdgr

import (
	"go.uber.org/zap"

	"github.com/oneconcern/datagit/pkg/model"
)

var (
	storeIDKey = []byte("meta:id")

	commitPref = [7]byte{'c', 'o', 'm', 'm', 'i', 't', ':'}
	refPref    = [4]byte{'r', 'e', 'f', ':'}
)

func commitKey(oid model.Oid) []byte {
	k := make([]byte, 0, len(commitPref)+model.OidSize)
	k = append(k, commitPref[:]...)
	return append(k, oid[:]...)
}

func refKey(key string) []byte {
	k := make([]byte, 0, len(refPref)+len(key))
	k = append(k, refPref[:]...)
	return append(k, key...)
}

func keyFromRef(k []byte) string {
	return string(k[len(refPref):])
}

// badgerLogger routes badger's own logs to zap
type badgerLogger struct {
	l *zap.SugaredLogger
}

func (b badgerLogger) Errorf(format string, args ...interface{})   { b.l.Errorf(format, args...) }
func (b badgerLogger) Warningf(format string, args ...interface{}) { b.l.Warnf(format, args...) }
func (b badgerLogger) Infof(format string, args ...interface{})    { b.l.Debugf(format, args...) }
func (b badgerLogger) Debugf(format string, args ...interface{})   { b.l.Debugf(format, args...) }
