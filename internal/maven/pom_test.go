package maven

import (
	"strings"
	"testing"
)

func TestReadPOMDependencies(t *testing.T) {
	pom := `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <parent>
    <groupId>com.example</groupId>
    <artifactId>parent</artifactId>
    <version>1.0.0</version>
  </parent>
  <artifactId>child</artifactId>
  <properties>
    <slf4j.group>org.slf4j</slf4j.group>
    <slf4j.version>2.0.9</slf4j.version>
  </properties>
  <dependencies>
    <dependency>
      <groupId>${slf4j.group}</groupId>
      <artifactId>slf4j-api</artifactId>
      <version>${slf4j.version}</version>
    </dependency>
    <dependency>
      <groupId>${project.groupId}</groupId>
      <artifactId>sibling</artifactId>
      <version>${project.version}</version>
      <scope>test</scope>
    </dependency>
    <dependency>
      <groupId>${undefined.group}</groupId>
      <artifactId>skipped</artifactId>
    </dependency>
  </dependencies>
  <dependencyManagement>
    <dependencies>
      <dependency>
        <groupId>com.google.guava</groupId>
        <artifactId>guava</artifactId>
        <version>32.1.0-jre</version>
      </dependency>
    </dependencies>
  </dependencyManagement>
</project>`

	deps, err := ReadPOMDependencies(strings.NewReader(pom))
	if err != nil {
		t.Fatalf("ReadPOMDependencies failed: %v", err)
	}

	want := []struct {
		id      string
		version string
		scope   string
		managed bool
	}{
		{"org.slf4j:slf4j-api", "2.0.9", "", false},
		{"com.example:sibling", "1.0.0", "test", false},
		{"com.google.guava:guava", "32.1.0-jre", "", true},
	}

	if len(deps) != len(want) {
		t.Fatalf("expected %d dependencies, got %d: %+v", len(want), len(deps), deps)
	}
	for i, w := range want {
		d := deps[i]
		if d.Coordinate.String() != w.id || d.Version != w.version || d.Scope != w.scope || d.Managed != w.managed {
			t.Errorf("dependency %d = %+v, want %+v", i, d, w)
		}
	}
}

func TestReadPOMDependenciesRejectsNonPOM(t *testing.T) {
	if _, err := ReadPOMDependencies(strings.NewReader(`<metadata/>`)); err == nil {
		t.Error("expected error for non-project root")
	}
	if _, err := ReadPOMDependencies(strings.NewReader(`this is <not xml`)); err == nil {
		t.Error("expected error for malformed document")
	}
}

func TestReadVersionCatalog(t *testing.T) {
	catalog := `
[versions]
kotlin = "1.9.0"

[libraries]
kotlin-stdlib = { module = "org.jetbrains.kotlin:kotlin-stdlib-jdk8", version.ref = "kotlin" }
guava = "com.google.guava:guava:32.1.0-jre"
okhttp = { group = "com.squareup.okhttp3", name = "okhttp", version = "4.11.0" }

[plugins]
kotlin-jvm = { id = "org.jetbrains.kotlin.jvm", version.ref = "kotlin" }
`

	libs, err := ReadVersionCatalog(strings.NewReader(catalog))
	if err != nil {
		t.Fatalf("ReadVersionCatalog failed: %v", err)
	}

	want := map[string]string{
		"guava":         "com.google.guava:guava",
		"kotlin-stdlib": "org.jetbrains.kotlin:kotlin-stdlib-jdk8",
		"okhttp":        "com.squareup.okhttp3:okhttp",
	}
	if len(libs) != len(want) {
		t.Fatalf("expected %d libraries, got %d", len(want), len(libs))
	}
	for i := 1; i < len(libs); i++ {
		if libs[i-1].Alias > libs[i].Alias {
			t.Errorf("libraries not sorted by alias: %q before %q", libs[i-1].Alias, libs[i].Alias)
		}
	}
	for _, lib := range libs {
		if want[lib.Alias] != lib.Coordinate.String() {
			t.Errorf("%s = %q, want %q", lib.Alias, lib.Coordinate.String(), want[lib.Alias])
		}
	}
}

func TestReadVersionCatalogInvalidEntry(t *testing.T) {
	_, err := ReadVersionCatalog(strings.NewReader(`[libraries]
broken = "no-colon"
`))
	if err == nil {
		t.Error("expected error for library without group")
	}
}
