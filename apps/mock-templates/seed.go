package main

import "fmt"

const templatesRepo = "tilsley/kata-templates"

// seedTemplates populates the file store with a small template corpus:
// one single-template language (go) and two multi-template languages.
// Called before the server accepts requests.
func seedTemplates(s *store) {
	files := make(map[string]string)

	// go: the language dir holds files directly, so it is its own template.
	files["go/go.mod.tmpl"] = "module kata\n\ngo 1.25\n"
	files["go/kata.go"] = goKata()
	files["go/kata_test.go"] = goKataTest()
	files["go/README.md"] = readme("go")

	// java: two named templates, each with nested source trees.
	for _, flavor := range []string{"junit5", "hamcrest"} {
		base := "java/" + flavor
		files[base+"/build.gradle"] = javaBuildGradle(flavor)
		files[base+"/src/main/java/kata/Kata.java"] = javaKata()
		files[base+"/src/test/java/kata/KataTest.java"] = javaKataTest(flavor)
	}

	// python: one named template.
	files["python/pytest/kata.py"] = "def kata():\n    raise NotImplementedError\n"
	files["python/pytest/test_kata.py"] = "from kata import kata\n\n\ndef test_kata():\n    kata()\n"
	files["python/pytest/requirements.txt"] = "pytest\n"

	s.files[templatesRepo] = files
}

func readme(language string) string {
	return fmt.Sprintf("# Kata\n\nA fresh %s kata. Make the failing test pass.\n", language)
}

func goKata() string {
	return "package kata\n\n// Kata is where the exercise starts.\nfunc Kata() string {\n\treturn \"\"\n}\n"
}

func goKataTest() string {
	return "package kata\n\nimport \"testing\"\n\nfunc TestKata(t *testing.T) {\n\tif Kata() == \"\" {\n\t\tt.Fatal(\"not implemented\")\n\t}\n}\n"
}

func javaBuildGradle(flavor string) string {
	return fmt.Sprintf("plugins { id 'java' }\n// test flavor: %s\n", flavor)
}

func javaKata() string {
	return "package kata;\n\npublic class Kata {\n    public static String kata() {\n        return \"\";\n    }\n}\n"
}

func javaKataTest(flavor string) string {
	return fmt.Sprintf("package kata;\n\n// %s-style test skeleton.\npublic class KataTest {\n}\n", flavor)
}
