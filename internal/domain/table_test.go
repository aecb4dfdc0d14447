package domain

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseTables(t *testing.T) {
	Convey("Given a table list", t, func() {
		Convey("When entries are qualified and unqualified", func() {
			tables, err := ParseTables("db1.t1,t2", "default")

			Convey("It should resolve the default database for bare names", func() {
				So(err, ShouldBeNil)
				So(tables, ShouldResemble, []TableRef{
					{Database: "db1", Table: "t1"},
					{Database: "default", Table: "t2"},
				})
			})
		})

		Convey("When entries have whitespace and blanks", func() {
			tables, err := ParseTables(" t1 , ,db2.t3,", "default")

			Convey("It should trim and skip empty entries, keeping order", func() {
				So(err, ShouldBeNil)
				So(len(tables), ShouldEqual, 2)
				So(tables[0].String(), ShouldEqual, "default.t1")
				So(tables[1].String(), ShouldEqual, "db2.t3")
			})
		})

		Convey("When the list is empty", func() {
			_, err := ParseTables(" , ", "default")

			Convey("It should return ErrNoTables", func() {
				So(errors.Is(err, ErrNoTables), ShouldBeTrue)
			})
		})

		Convey("When an entry has more than one dot", func() {
			_, err := ParseTables("a.b.c", "default")

			Convey("It should return a ConfigurationError", func() {
				var cfgErr *ConfigurationError
				So(errors.As(err, &cfgErr), ShouldBeTrue)
				So(cfgErr.Field, ShouldEqual, "a.b.c")
			})
		})

		Convey("When a side of the dot is empty", func() {
			_, err1 := ParseTables(".t1", "default")
			_, err2 := ParseTables("db1.", "default")

			Convey("It should reject both", func() {
				So(err1, ShouldNotBeNil)
				So(err2, ShouldNotBeNil)
			})
		})

		Convey("When a name contains the key separator", func() {
			_, err := ParseTables("db/x.t1", "default")

			Convey("It should be rejected", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "'/'")
			})
		})

		Convey("When the default database itself is invalid", func() {
			_, err := ParseTables("t1", "")

			Convey("It should be rejected", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "database")
			})
		})
	})
}

func TestValidateIdentifier(t *testing.T) {
	Convey("ValidateIdentifier", t, func() {
		So(ValidateIdentifier("events_2024"), ShouldBeNil)
		So(ValidateIdentifier("my-table"), ShouldBeNil)
		So(ValidateIdentifier(""), ShouldNotBeNil)
		So(ValidateIdentifier(`t"1`), ShouldNotBeNil)
		So(ValidateIdentifier(`t\1`), ShouldNotBeNil)
		So(ValidateIdentifier("t\n1"), ShouldNotBeNil)
		So(ValidateIdentifier("a/b"), ShouldNotBeNil)
	})
}

func TestErrors(t *testing.T) {
	Convey("Given the typed errors", t, func() {
		cause := errors.New("connection refused")
		table := TableRef{Database: "default", Table: "t2"}

		Convey("SetupError unwraps to its cause", func() {
			err := &SetupError{Stage: "tables", Err: ErrNoTables}
			So(errors.Is(err, ErrNoTables), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "tables")
		})

		Convey("LocatorError names the table and prefix", func() {
			err := &LocatorError{Table: table, Prefix: "default/t2", Err: cause}
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "default.t2")
			So(err.Error(), ShouldContainSubstring, "default/t2/")
		})

		Convey("BackupEngineError names the table and target", func() {
			err := &BackupEngineError{Table: table, Target: "http://minio:9000/backups/default/t2/x", Err: cause}
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "default.t2")
			So(err.Error(), ShouldContainSubstring, "http://minio:9000/backups/default/t2/x")
		})
	})
}
